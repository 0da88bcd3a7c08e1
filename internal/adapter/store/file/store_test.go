package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "koperasi.json")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)

	_, found, err := s.Get(ctx, "saldo_awal")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "saldo_awal", `{"cash":"5000000"}`))
	require.NoError(t, s.Set(ctx, "coa", "[]"))

	reopened, err := New(path)
	require.NoError(t, err)

	value, found, err := reopened.Get(ctx, "saldo_awal")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"cash":"5000000"}`, value)

	require.NoError(t, reopened.Remove(ctx, "saldo_awal"))
	_, found, err = s.Get(ctx, "saldo_awal")
	require.NoError(t, err)
	assert.False(t, found)

	value, found, err = s.Get(ctx, "coa")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", value)
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "koperasi.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := New(path)
	require.NoError(t, err)

	_, _, err = s.Get(context.Background(), "coa")
	require.Error(t, err)

	err = s.Set(context.Background(), "coa", "[]")
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "koperasi.json"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(context.Background(), "coa", "[]"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
