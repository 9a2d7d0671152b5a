package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is an in-memory implementation of driven.BlobStore for testing.
// It has no local files, so LocalPath returns "mem://" paths that only an
// extractor stub can read.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Put stores r under docs/<filename>, suffixing colliding names.
func (s *BlobStore) Put(_ context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := "docs/" + filename
	for i := 1; ; i++ {
		if _, taken := s.blobs[key]; !taken {
			break
		}
		key = fmt.Sprintf("docs/%d_%s", i, filename)
	}
	s.blobs[key] = data
	return key, nil
}

// LocalPath returns a pseudo path for key.
func (s *BlobStore) LocalPath(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.blobs[key]; !ok {
		return "", domain.ErrBlobNotFound
	}
	return "mem://" + key, nil
}

// Open returns a reader over the stored bytes.
func (s *BlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the stored bytes.
func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return domain.ErrBlobNotFound
	}
	delete(s.blobs, key)
	return nil
}

// Bytes returns the stored content for key, for assertions.
func (s *BlobStore) Bytes(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	return data, ok
}
