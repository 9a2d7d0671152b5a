package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]domain.Document
	now    func() time.Time
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		docs: make(map[int64]domain.Document),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a record and assigns its ID and CreatedAt.
func (s *RecordStore) Create(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	doc.ID = s.nextID
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now()
	}
	s.docs[doc.ID] = *doc
	return nil
}

// Save updates an existing record.
func (s *RecordStore) Save(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.docs[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.CreatedAt = existing.CreatedAt
	s.docs[doc.ID] = *doc
	return nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Delete removes a record.
func (s *RecordStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// List returns all records, newest first.
func (s *RecordStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(domain.Document) bool { return true }, 0), nil
}

// FilterContains returns records whose title, content or tags contain needle.
func (s *RecordStore) FilterContains(_ context.Context, needle string, limit int) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := strings.ToLower(needle)
	return s.sorted(func(d domain.Document) bool {
		return strings.Contains(strings.ToLower(d.Title), n) ||
			strings.Contains(strings.ToLower(d.Content), n) ||
			strings.Contains(strings.ToLower(d.Tags), n)
	}, limit), nil
}

// Latest returns the newest record.
func (s *RecordStore) Latest(_ context.Context) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.sorted(func(domain.Document) bool { return true }, 1)
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &docs[0], nil
}

// Count returns the number of records.
func (s *RecordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Close is a no-op.
func (s *RecordStore) Close() error {
	return nil
}

// sorted returns matching records newest first. Callers hold the lock.
func (s *RecordStore) sorted(match func(domain.Document) bool, limit int) []domain.Document {
	out := make([]domain.Document, 0, len(s.docs))
	for _, d := range s.docs {
		if match(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
