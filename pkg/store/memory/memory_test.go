package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/store/memory"
	"github.com/agentstation/tripmap/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, memory.New())
}

func TestLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Save(ctx, "k", []byte(`[1]`)))

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(again))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}
