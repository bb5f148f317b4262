// Package dictstore abstracts where alphabet and dictionary resources
// live. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads and atomic writes
//   - MemoryStore: in-memory store for tests
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with streamed uploads
//
// # Custom Implementations
//
// Implement the Store interface to supply resources from anywhere:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)           // open for reading
//	    Create(ctx, name) (WritableBlob, error) // create for writing
//	    Put(ctx, name, data) error              // atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// A missing resource reports ErrNotFound, which also satisfies
// errors.Is(err, os.ErrNotExist).
package dictstore
