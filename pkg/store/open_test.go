package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/store"
)

func TestScheme(t *testing.T) {
	tests := []struct {
		dsn     string
		backend string
		target  string
	}{
		{"", store.BackendMemory, ""},
		{"memory://", store.BackendMemory, ""},
		{"file:///var/lib/tripmap", store.BackendFile, "/var/lib/tripmap"},
		{"./data", store.BackendFile, "./data"},
		{"sqlite:///tmp/trip.db", store.BackendSQLite, "/tmp/trip.db"},
		{"trip.sqlite", store.BackendSQLite, "trip.sqlite"},
		{"postgres://u:p@localhost/trip", store.BackendPostgres, "postgres://u:p@localhost/trip"},
		{"postgresql://localhost/trip", store.BackendPostgres, "postgresql://localhost/trip"},
		{"redis://localhost:6379/0", store.BackendRedis, "redis://localhost:6379/0"},
		{"mongodb+srv://cluster/trip", store.BackendMongo, "mongodb+srv://cluster/trip"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			backend, target := store.Scheme(tt.dsn)
			assert.Equal(t, tt.backend, backend)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestOpenLocalBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, dsn := range []string{
		"memory://",
		"file://" + filepath.Join(dir, "docs"),
		"sqlite://" + filepath.Join(dir, "trip.db"),
	} {
		t.Run(dsn, func(t *testing.T) {
			s, err := store.Open(ctx, dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			require.NoError(t, s.Save(ctx, "k", []byte(`{}`)))
			_, ok := s.(store.Lister)
			assert.True(t, ok)
		})
	}
}
