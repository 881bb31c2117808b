package storage

import (
	"context"
	"io"
)

// ObjectStorage is the blob store ranking reports are archived to.
type ObjectStorage interface {
	// Upload writes size bytes from reader under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens the object at key. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}
