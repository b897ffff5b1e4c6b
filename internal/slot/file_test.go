package slot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Lifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "token")
	f := NewFile(path)

	token, ok, err := f.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)

	require.NoError(t, f.Store(ctx, "abc.def.ghi"))

	token, ok, err = f.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, f.Store(ctx, "next"))
	token, _, err = f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next", token)

	require.NoError(t, f.Clear(ctx))
	require.NoError(t, f.Clear(ctx))

	_, ok, err = f.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_BlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, ok, err := NewFile(path).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
