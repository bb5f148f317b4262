package dictstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)

	require.NoError(t, s.Put(ctx, "alphabets/latin.def", []byte("[41,5A]\n[61,7A]\n")))

	// The resource lands at the slash-mapped path.
	onDisk, err := os.ReadFile(filepath.Join(root, "alphabets", "latin.def"))
	require.NoError(t, err)
	assert.Equal(t, "[41,5A]\n[61,7A]\n", string(onDisk))

	blob, err := s.Open(ctx, "alphabets/latin.def")
	require.NoError(t, err)

	assert.Equal(t, int64(16), blob.Size())

	p := make([]byte, 8)
	_, err = blob.ReadAt(p, 8)
	require.NoError(t, err)
	assert.Equal(t, "[61,7A]\n", string(p))

	mb, ok := blob.(Mappable)
	require.True(t, ok)
	data, err := mb.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "[41,5A]\n[61,7A]\n", string(data))

	require.NoError(t, blob.Close())

	require.NoError(t, s.Delete(ctx, "alphabets/latin.def"))
	_, err = s.Open(ctx, "alphabets/latin.def")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "alphabets/latin.def"))
}

func TestLocalStore_OpenMissing(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Open(context.Background(), "nope.def")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_CreateAtomic(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)

	w, err := s.Create(ctx, "wip.def")
	require.NoError(t, err)

	_, err = w.Write([]byte("[41,5A]\n"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	// Until Close, only the temp file exists.
	_, err = s.Open(ctx, "wip.def")
	assert.ErrorIs(t, err, ErrNotFound)

	tmps, err := filepath.Glob(filepath.Join(root, "*.tmp-*"))
	require.NoError(t, err)
	assert.Len(t, tmps, 1)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")

	blob, err := s.Open(ctx, "wip.def")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(8), blob.Size())

	tmps, err = filepath.Glob(filepath.Join(root, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, tmps)
}

func TestLocalStore_PutOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "a.def", []byte("old")))
	require.NoError(t, s.Put(ctx, "a.def", []byte("new!")))

	blob, err := s.Open(ctx, "a.def")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(4), blob.Size())
}

func TestLocalStore_EmptyResource(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())
	require.NoError(t, s.Put(ctx, "empty.def", nil))

	blob, err := s.Open(ctx, "empty.def")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(0), blob.Size())

	var p [1]byte
	_, err = blob.ReadAt(p[:], 0)
	assert.ErrorIs(t, err, io.EOF)

	n, err := blob.ReadAt(nil, 0)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestLocalStore_List(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)

	require.NoError(t, s.Put(ctx, "alphabets/latin.def", nil))
	require.NoError(t, s.Put(ctx, "alphabets/cjk/han.def", nil))
	require.NoError(t, s.Put(ctx, "readme.txt", nil))

	// In-flight temp files never show up in listings.
	require.NoError(t, os.WriteFile(filepath.Join(root, "alphabets", "x.def.tmp-123"), nil, 0o644))

	names, err := s.List(ctx, "alphabets/")
	require.NoError(t, err)
	assert.Equal(t, []string{"alphabets/cjk/han.def", "alphabets/latin.def"}, names)

	names, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"alphabets/cjk/han.def", "alphabets/latin.def", "readme.txt"}, names)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	s := NewLocalStore(filepath.Join(t.TempDir(), "never-created"))
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
