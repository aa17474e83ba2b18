// Package storetest holds the behavior every Store backend must share.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/errors"
)

// Backend is the subset of store.Store exercised here.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Run checks load/save semantics against s. Keys are prefixed so the suite
// can share a database with other data.
func Run(t *testing.T, s Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		_, err := s.Load(ctx, "storetest_missing")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("save then load", func(t *testing.T) {
		want := []byte(`{"schema":"storetest_a","version":1,"data":["護照","機票"]}`)
		require.NoError(t, s.Save(ctx, "storetest_a", want))

		got, err := s.Load(ctx, "storetest_a")
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "storetest_b", []byte(`[1,2,3]`)))
		require.NoError(t, s.Save(ctx, "storetest_b", []byte(`[]`)))

		got, err := s.Load(ctx, "storetest_b")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(got))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("storetest_c%d", i)
				assert.NoError(t, s.Save(ctx, key, []byte(fmt.Sprintf(`{"n":%d}`, i))))
			}(i)
		}
		wg.Wait()

		for i := 0; i < 8; i++ {
			got, err := s.Load(ctx, fmt.Sprintf("storetest_c%d", i))
			require.NoError(t, err)
			assert.JSONEq(t, fmt.Sprintf(`{"n":%d}`, i), string(got))
		}
	})
}
