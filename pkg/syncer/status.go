package syncer

import (
	"sync"
	"time"

	"github.com/agentstation/tripmap/pkg/errors"
)

// Status is the state of the remote sync machine.
type Status string

// Sync states.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// StatusMachine allows one remote operation at a time:
//
//	idle → loading → success | error → idle (after the settle delay)
//
// A finished state can be left early by starting a new operation.
type StatusMachine struct {
	mu       sync.Mutex
	status   Status
	lastErr  error
	delay    time.Duration
	timer    *time.Timer
	gen      uint64
	onChange func(old, new Status)
}

// NewStatusMachine creates an idle machine. onChange may be nil.
func NewStatusMachine(delay time.Duration, onChange func(old, new Status)) *StatusMachine {
	return &StatusMachine{
		status:   StatusIdle,
		delay:    delay,
		onChange: onChange,
	}
}

// Status returns the current state.
func (m *StatusMachine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err returns the error of the last failed operation, if any.
func (m *StatusMachine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Begin enters loading. It fails with errors.ErrSyncInProgress while
// another operation is loading.
func (m *StatusMachine) Begin() error {
	m.mu.Lock()
	if m.status == StatusLoading {
		m.mu.Unlock()
		return errors.ErrSyncInProgress
	}
	m.stopTimer()
	old := m.status
	m.status = StatusLoading
	m.lastErr = nil
	m.mu.Unlock()

	m.notify(old, StatusLoading)
	return nil
}

// Finish leaves loading for success or error and schedules the return to idle.
func (m *StatusMachine) Finish(err error) {
	next := StatusSuccess
	if err != nil {
		next = StatusError
	}

	m.mu.Lock()
	if m.status != StatusLoading {
		m.mu.Unlock()
		return
	}
	m.status = next
	m.lastErr = err
	m.gen++
	gen := m.gen
	m.timer = time.AfterFunc(m.delay, func() { m.settle(gen) })
	m.mu.Unlock()

	m.notify(StatusLoading, next)
}

// Reset returns to idle immediately, for operations that ended without a result.
func (m *StatusMachine) Reset() {
	m.mu.Lock()
	m.stopTimer()
	old := m.status
	m.status = StatusIdle
	m.lastErr = nil
	m.mu.Unlock()

	if old != StatusIdle {
		m.notify(old, StatusIdle)
	}
}

func (m *StatusMachine) settle(gen uint64) {
	m.mu.Lock()
	if m.gen != gen || m.status == StatusLoading || m.status == StatusIdle {
		m.mu.Unlock()
		return
	}
	from := m.status
	m.status = StatusIdle
	m.timer = nil
	m.mu.Unlock()

	m.notify(from, StatusIdle)
}

// stopTimer cancels a pending settle. Callers hold m.mu.
func (m *StatusMachine) stopTimer() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *StatusMachine) notify(old, new Status) {
	if m.onChange != nil && old != new {
		m.onChange(old, new)
	}
}
