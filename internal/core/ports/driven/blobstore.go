package driven

import (
	"context"
	"io"
)

// BlobStore holds uploaded files under opaque keys.
type BlobStore interface {
	// Put stores r under a key derived from filename and returns the key.
	// Colliding names receive a unique suffix.
	Put(ctx context.Context, filename string, r io.Reader) (string, error)

	// LocalPath resolves a key to a readable local path.
	// Returns domain.ErrBlobNotFound if nothing is stored under key.
	LocalPath(key string) (string, error)

	// Open returns a reader for the stored file.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored file.
	// Returns domain.ErrBlobNotFound if nothing is stored under key.
	Delete(ctx context.Context, key string) error
}
