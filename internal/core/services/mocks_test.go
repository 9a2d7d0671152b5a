package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// --- Mock implementations ---

// mockSearchIndex implements driven.SearchIndex for testing.
type mockSearchIndex struct {
	mu         sync.Mutex
	entries    map[int64]domain.IndexEntry
	hits       []domain.SearchHit
	searchErr  error
	upsertErr  error
	deleteErr  error
	rebuildErr error
	queries    []string
	rebuilds   int
}

func newMockSearchIndex() *mockSearchIndex {
	return &mockSearchIndex{entries: make(map[int64]domain.IndexEntry)}
}

func (m *mockSearchIndex) Upsert(_ context.Context, e domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockSearchIndex) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.entries, id)
	return nil
}

func (m *mockSearchIndex) Rebuild(_ context.Context, entries []domain.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rebuildErr != nil {
		return m.rebuildErr
	}
	m.rebuilds++
	m.entries = make(map[int64]domain.IndexEntry, len(entries))
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return nil
}

func (m *mockSearchIndex) Search(_ context.Context, q string, limit int) ([]domain.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit < len(m.hits) {
		return m.hits[:limit], nil
	}
	return m.hits, nil
}

func (m *mockSearchIndex) Count() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(len(m.entries)), nil
}

func (m *mockSearchIndex) Close() error {
	return nil
}

func (m *mockSearchIndex) entry(id int64) (domain.IndexEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

// stubExtractor implements driven.TextExtractor with canned text per path.
type stubExtractor struct {
	text  map[string]string
	calls []string
}

func (s *stubExtractor) Extract(_ context.Context, path string) string {
	s.calls = append(s.calls, path)
	return s.text[path]
}

// failingRecords wraps the memory store and injects errors.
type failingRecords struct {
	*memory.RecordStore
	createErr error
	saveErr   error
	getErr    error
	filterErr error
}

func (f *failingRecords) Create(ctx context.Context, d *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.RecordStore.Create(ctx, d)
}

func (f *failingRecords) Save(ctx context.Context, d *domain.Document) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.RecordStore.Save(ctx, d)
}

func (f *failingRecords) Get(ctx context.Context, id int64) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.RecordStore.Get(ctx, id)
}

func (f *failingRecords) FilterContains(ctx context.Context, n string, limit int) ([]domain.Document, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	return f.RecordStore.FilterContains(ctx, n, limit)
}

// failingBlobs wraps the memory blob store and injects errors.
type failingBlobs struct {
	*memory.BlobStore
	putErr    error
	pathErr   error
	deleteErr error
}

func (f *failingBlobs) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	return f.BlobStore.Put(ctx, name, r)
}

func (f *failingBlobs) LocalPath(key string) (string, error) {
	if f.pathErr != nil {
		return "", f.pathErr
	}
	return f.BlobStore.LocalPath(key)
}

func (f *failingBlobs) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.BlobStore.Delete(ctx, key)
}

var errBoom = errors.New("boom")
