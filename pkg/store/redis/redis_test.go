package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/store/redis"
	"github.com/agentstation/tripmap/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	url := os.Getenv("TRIPMAP_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TRIPMAP_TEST_REDIS_URL not set")
	}

	s, err := redis.Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storetest.Run(t, s)
}
