package dictstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a named resource does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store provides named, immutable alphabet and dictionary resources.
type Store interface {
	// Open opens a resource for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a resource for writing. The data becomes visible
	// on Close; a resource is never observable half-written.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a resource atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a resource. Deleting a missing resource is not an
	// error.
	Delete(ctx context.Context, name string) error
	// List returns the resource names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a resource.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the resource in bytes.
	Size() int64
}

// WritableBlob is a write handle to a resource being created.
type WritableBlob interface {
	io.Writer
	io.Closer
	// Sync flushes written data toward durable storage where the
	// backend supports it.
	Sync() error
}

// Mappable is an optional interface for Blobs that expose their bytes
// without copying. The slice is valid until the Blob is closed.
type Mappable interface {
	Bytes() ([]byte, error)
}
