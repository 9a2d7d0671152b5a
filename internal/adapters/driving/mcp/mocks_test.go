package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
// Get looks documents up by ID in documents.
type mockDocumentService struct {
	documents []domain.Document
	err       error
}

func (m *mockDocumentService) Upload(
	_ context.Context, _ domain.UploadRequest, _ io.Reader,
) (*domain.UploadResult, error) {
	return nil, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, id int64) (*domain.DeleteResult, error) {
	return &domain.DeleteResult{ID: id}, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id int64) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			doc := m.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Stats(_ context.Context) (*domain.Stats, error) {
	return &domain.Stats{TotalDocuments: len(m.documents)}, m.err
}

func (m *mockDocumentService) OpenFile(_ context.Context, _ int64) (io.ReadCloser, *domain.Document, error) {
	return nil, nil, domain.ErrNotFound
}
