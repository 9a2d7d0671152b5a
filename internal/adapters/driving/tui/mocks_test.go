package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// MockSearchService returns canned results for any query.
type MockSearchService struct {
	Results []domain.SearchResult
	Err     error
}

func (m *MockSearchService) Search(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return m.Results, m.Err
}

// MockDocumentService keeps documents in memory, newest first.
type MockDocumentService struct {
	mu   sync.Mutex
	docs []domain.Document
}

func (m *MockDocumentService) Upload(context.Context, domain.UploadRequest, io.Reader) (*domain.UploadResult, error) {
	return nil, errors.New("not implemented")
}

func (m *MockDocumentService) Delete(_ context.Context, id int64) (*domain.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return &domain.DeleteResult{ID: id}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Get(_ context.Context, id int64) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) List(context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Document(nil), m.docs...), nil
}

func (m *MockDocumentService) Stats(context.Context) (*domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &domain.Stats{TotalDocuments: len(m.docs), IndexedDocuments: -1}
	if len(m.docs) > 0 {
		last := m.docs[0]
		stats.LastUploaded = &last
	}
	return stats, nil
}

func (m *MockDocumentService) OpenFile(ctx context.Context, id int64) (io.ReadCloser, *domain.Document, error) {
	doc, err := m.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return io.NopCloser(strings.NewReader(doc.Content)), doc, nil
}
