package collections_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store/memory"
)

var fixedNow = time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC)

// sequentialIDs returns an id source producing "<prefix>-1", "<prefix>-2", ...
func sequentialIDs() func(string) string {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// recorder collects change events.
type recorder struct {
	mu     sync.Mutex
	events []collections.ChangeEvent
}

func (r *recorder) record(e collections.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []collections.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]collections.ChangeEvent(nil), r.events...)
}

func testOptions(t *testing.T, rec *recorder) []collections.Option {
	t.Helper()
	opts := []collections.Option{
		collections.WithLogger(logging.NewNopLogger()),
		collections.WithClock(func() time.Time { return fixedNow }),
		collections.WithIDFunc(sequentialIDs()),
	}
	if rec != nil {
		opts = append(opts, collections.WithNotifier(rec.record))
	}
	return opts
}

// failingStore reads like an empty memory store and rejects every write.
type failingStore struct {
	*memory.Store
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}
