package syncer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmerrors "github.com/agentstation/tripmap/pkg/errors"
)

type transitions struct {
	mu  sync.Mutex
	got []string
}

func (tr *transitions) record(old, new Status) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.got = append(tr.got, string(old)+"→"+string(new))
}

func (tr *transitions) list() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.got...)
}

func TestStatusMachineSettles(t *testing.T) {
	tr := &transitions{}
	m := NewStatusMachine(20*time.Millisecond, tr.record)

	require.NoError(t, m.Begin())
	assert.Equal(t, StatusLoading, m.Status())

	m.Finish(nil)
	assert.Equal(t, StatusSuccess, m.Status())

	assert.Eventually(t, func() bool { return m.Status() == StatusIdle }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"idle→loading", "loading→success", "success→idle"}, tr.list())
}

func TestStatusMachineError(t *testing.T) {
	m := NewStatusMachine(time.Hour, nil)
	boom := errors.New("boom")

	require.NoError(t, m.Begin())
	m.Finish(boom)
	assert.Equal(t, StatusError, m.Status())
	assert.Equal(t, boom, m.Err())

	// A new operation may start before the error settles.
	require.NoError(t, m.Begin())
	assert.Nil(t, m.Err())
	m.Reset()
	assert.Equal(t, StatusIdle, m.Status())
}

func TestStatusMachineRejectsConcurrentOperations(t *testing.T) {
	m := NewStatusMachine(time.Hour, nil)

	require.NoError(t, m.Begin())
	err := m.Begin()
	assert.ErrorIs(t, err, tmerrors.ErrSyncInProgress)
	assert.Equal(t, StatusLoading, m.Status())
}

func TestStatusMachineStaleSettleIgnored(t *testing.T) {
	m := NewStatusMachine(30*time.Millisecond, nil)

	require.NoError(t, m.Begin())
	m.Finish(nil)
	require.NoError(t, m.Begin())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StatusLoading, m.Status(), "the first settle must not end the second operation")
}
