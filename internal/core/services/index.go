package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
	"github.com/custodia-labs/docshelf/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService rebuilds the search index from the record store.
type IndexService struct {
	records driven.RecordStore
	index   driven.SearchIndex
}

// NewIndexService creates a new index service. index may be nil.
func NewIndexService(records driven.RecordStore, index driven.SearchIndex) *IndexService {
	return &IndexService{records: records, index: index}
}

// Available reports whether a search index is attached.
func (s *IndexService) Available() bool {
	return s.index != nil
}

// Rebuild replaces the index with an entry for every record.
// Searches keep answering from the previous index until the swap.
func (s *IndexService) Rebuild(ctx context.Context) (int, error) {
	logger.Section("Reindex")

	if s.index == nil {
		return 0, domain.ErrIndexUnavailable
	}

	docs, err := s.records.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list documents: %w", err)
	}

	entries := make([]domain.IndexEntry, 0, len(docs))
	for i := range docs {
		entries = append(entries, domain.EntryFromDocument(docs[i]))
	}
	logger.Debug("Rebuilding index with %d entries", len(entries))

	if err := s.index.Rebuild(ctx, entries); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	logger.Info("Reindexed %d documents", len(entries))
	return len(entries), nil
}
