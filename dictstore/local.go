package dictstore

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/triekit/alphamap/internal/mmap"
)

// LocalStore implements Store on the local file system. Reads are
// memory-mapped; writes go to a temp file in the target directory and
// rename into place on Close, so a reader never observes a
// half-written resource.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens a resource for reading. The mapping is advised for
// sequential access since alphabet resources decode front to back.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		// os errors for missing files already satisfy ErrNotFound.
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Create creates a resource for writing.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	final := s.path(name)
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(final), filepath.Base(final)+".tmp-*")
	if err != nil {
		return nil, err
	}
	_ = tmp.Chmod(0o644)
	return &localWritableBlob{
		f:     tmp,
		bw:    bufio.NewWriterSize(tmp, 64*1024),
		final: final,
	}, nil
}

// Put writes a resource atomically.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Delete removes a resource. A missing resource is not an error.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the resource names with the given prefix, sorted.
// In-flight temp files are excluded.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == s.root && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.Contains(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		if name := filepath.ToSlash(rel); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// localBlob serves reads from the mapping; Bytes exposes it zero-copy.
type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}

type localWritableBlob struct {
	f     *os.File
	bw    *bufio.Writer
	final string
	done  bool
}

func (w *localWritableBlob) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

func (w *localWritableBlob) Sync() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	return w.f.Sync()
}

// Close flushes, syncs, and atomically renames the temp file into
// place. On any failure the temp file is removed and the target is
// left untouched.
func (w *localWritableBlob) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	tmpName := w.f.Name()
	err := w.bw.Flush()
	if err == nil {
		err = w.f.Sync()
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, w.final)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, derr := os.Open(filepath.Dir(w.final)); derr == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
