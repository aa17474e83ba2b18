package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store/file"
	"github.com/agentstation/tripmap/pkg/store/storetest"
)

func TestStore(t *testing.T) {
	s, err := file.New(t.TempDir())
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := file.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "kansai_coupons_v1", []byte(`[]`)))
	require.NoError(t, s.Save(ctx, "kansai_coupons_v1", []byte(`[{"id":"1"}]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kansai_coupons_v1.json", entries[0].Name())

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kansai_coupons_v1"}, keys)
}

func TestRejectsPathTraversal(t *testing.T) {
	s, err := file.New(t.TempDir())
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape", []byte(`{}`))
	assert.True(t, errors.IsValidationError(err))
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := file.New(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
