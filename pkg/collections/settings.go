package collections

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
)

// Settings holds device settings, currently the remote sync endpoint.
type Settings struct {
	base
	mu      sync.RWMutex
	syncURL string
}

// NewSettings creates a settings manager using the preset sync endpoint.
func NewSettings(s store.Store, opts ...Option) *Settings {
	return &Settings{
		base:    newBase(s, CollectionSettings, opts),
		syncURL: constants.DefaultSyncURL,
	}
}

// Load reads the stored sync endpoint, keeping the preset when none is stored.
func (m *Settings) Load(ctx context.Context) {
	u, ok := store.Get[string](m.ctx(ctx), m.store, SyncURLSchema)
	if !ok || u == "" {
		u = constants.DefaultSyncURL
	}
	m.mu.Lock()
	m.syncURL = u
	m.mu.Unlock()
}

// SyncURL returns the remote sync endpoint.
func (m *Settings) SyncURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.syncURL
}

// SetSyncURL stores a new remote sync endpoint. It must be an absolute
// http(s) URL; an empty string restores the preset.
func (m *Settings) SetSyncURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = constants.DefaultSyncURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewValidationError("syncUrl", raw, "must be an absolute http or https URL")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := store.Put(m.ctx(ctx), m.store, SyncURLSchema, raw); err != nil {
		return err
	}
	m.syncURL = raw
	m.changed(ActionUpdate, "syncUrl")
	return nil
}
