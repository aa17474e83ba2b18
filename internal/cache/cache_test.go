package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheBasics(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("rate", 0.21)
	v, ok := c.Get("rate")
	require.True(t, ok)
	assert.Equal(t, 0.21, v)
	assert.Equal(t, 1, c.ItemCount())

	c.Delete("rate")
	_, ok = c.Get("rate")
	assert.False(t, ok)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, Stats{ItemCount: 0}, c.GetStats())
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute, time.Minute)
	c.SetWithTTL("short", "x", 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute, time.Minute)
	calls := 0
	load := func(context.Context) (float64, error) {
		calls++
		return 0.2153, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad(ctx, c, "rate", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 0.2153, v)
	}
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute, time.Minute)
	boom := errors.New("boom")

	_, err := GetOrLoad(ctx, c, "k", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.ItemCount())
}
