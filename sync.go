package tripmap

import (
	"context"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// Syncer moves the shared collections between devices.
type Syncer interface {
	// Gather builds a payload from the stored collections
	Gather(ctx context.Context) *syncer.Payload

	// Apply overwrites the collections present in p and reloads
	Apply(ctx context.Context, p *syncer.Payload) ([]string, error)

	// ExportToken encodes the shared collections as a copy-paste token
	ExportToken(ctx context.Context) (string, error)

	// ImportToken applies a token once confirm agrees
	ImportToken(ctx context.Context, token string, confirm syncer.Confirm) ([]string, error)

	// Push uploads to the sync endpoint
	Push(ctx context.Context) (syncer.Ack, error)

	// Pull downloads from the sync endpoint and applies once confirm agrees
	Pull(ctx context.Context, confirm syncer.Confirm) (syncer.PullOutcome, error)

	// SyncStatus reports the push/pull state
	SyncStatus() syncer.Status

	// SyncError returns the error of the last failed push or pull
	SyncError() error

	// SyncURL returns the endpoint push and pull use
	SyncURL() string

	// SetSyncURL stores a new endpoint
	SetSyncURL(ctx context.Context, url string) error
}

// Gather builds a payload from the stored collections.
func (c *client) Gather(ctx context.Context) *syncer.Payload {
	return c.engine.Gather(ctx)
}

// Apply overwrites the collections present in p and reloads the managers.
func (c *client) Apply(ctx context.Context, p *syncer.Payload) ([]string, error) {
	written, err := c.engine.Apply(ctx, p)
	if err != nil {
		return written, err
	}
	c.reloaded(ReloadApply, written)
	return written, nil
}

// ExportToken encodes the shared collections as a token.
func (c *client) ExportToken(ctx context.Context) (string, error) {
	return c.engine.ExportToken(ctx)
}

// ImportToken decodes token and applies it once confirm agrees. A nil
// confirm applies without asking.
func (c *client) ImportToken(ctx context.Context, token string, confirm syncer.Confirm) ([]string, error) {
	written, err := c.engine.Import(ctx, token, confirm)
	if err != nil {
		return written, err
	}
	c.reloaded(ReloadImport, written)
	return written, nil
}

// Push uploads the shared collections to the sync endpoint.
func (c *client) Push(ctx context.Context) (syncer.Ack, error) {
	return c.engine.Push(ctx)
}

// Pull downloads the remote payload and applies it once confirm agrees.
func (c *client) Pull(ctx context.Context, confirm syncer.Confirm) (syncer.PullOutcome, error) {
	out, err := c.engine.Pull(ctx, confirm)
	if err != nil {
		return out, err
	}
	if out.Result == syncer.PullApplied {
		c.reloaded(ReloadPull, out.Written)
	}
	return out, nil
}

// SyncStatus reports the push/pull state.
func (c *client) SyncStatus() syncer.Status {
	return c.engine.Status()
}

// SyncError returns the error of the last failed push or pull.
func (c *client) SyncError() error {
	return c.engine.LastError()
}

// SyncURL returns the endpoint push and pull use: the WithSyncURL override
// when set, otherwise the stored setting.
func (c *client) SyncURL() string {
	if c.options.syncURL != "" {
		return c.options.syncURL
	}
	return c.set.Settings.SyncURL()
}

// SetSyncURL validates and stores a new endpoint.
func (c *client) SetSyncURL(ctx context.Context, url string) error {
	if c.options.syncURL != "" {
		return &errors.ConfigError{
			Component: "sync",
			Message:   "sync URL is fixed by configuration",
		}
	}
	return c.set.Settings.SetSyncURL(ctx, url)
}

func (c *client) reloaded(source string, keys []string) {
	c.hooks.triggerReload(ReloadEvent{Source: source, Keys: keys, At: c.options.now()})
}
