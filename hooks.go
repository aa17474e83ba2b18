package tripmap

import (
	"sync"
	"time"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// ChangeEvent describes one successful collection mutation.
type ChangeEvent = collections.ChangeEvent

// Reload sources.
const (
	ReloadManual = "manual"
	ReloadImport = "import"
	ReloadPull   = "pull"
	ReloadApply  = "apply"
)

// ReloadEvent is emitted after the managers re-read the store.
type ReloadEvent struct {
	Source string    `json:"source"`
	Keys   []string  `json:"keys,omitempty"`
	At     time.Time `json:"at"`
}

// Hook function types
type (
	// ChangeHook is called after every collection mutation
	ChangeHook func(ChangeEvent)

	// ReloadHook is called after a reload, import, pull or apply
	ReloadHook func(ReloadEvent)

	// SyncStatusHook is called when the sync status changes
	SyncStatusHook func(old, new syncer.Status)
)

// Hooks registers event callbacks. Callbacks run synchronously on the
// goroutine that caused the event and must not block.
type Hooks interface {
	OnChange(ChangeHook)
	OnReload(ReloadHook)
	OnSyncStatus(SyncStatusHook)
}

// hooks manages event callbacks
type hooks struct {
	mu           sync.RWMutex
	onChange     []ChangeHook
	onReload     []ReloadHook
	onSyncStatus []SyncStatusHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnChange registers a callback for collection mutations.
func (c *client) OnChange(fn ChangeHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onChange = append(c.hooks.onChange, fn)
}

// OnReload registers a callback for reloads.
func (c *client) OnReload(fn ReloadHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReload = append(c.hooks.onReload, fn)
}

// OnSyncStatus registers a callback for sync status transitions.
func (c *client) OnSyncStatus(fn SyncStatusHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSyncStatus = append(c.hooks.onSyncStatus, fn)
}

func (h *hooks) triggerChange(e ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onChange {
		fn(e)
	}
}

func (h *hooks) triggerReload(e ReloadEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReload {
		fn(e)
	}
}

func (h *hooks) triggerSyncStatus(old, new syncer.Status) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSyncStatus {
		fn(old, new)
	}
}
