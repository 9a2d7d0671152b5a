package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
	"github.com/custodia-labs/docshelf/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchOptions tunes limits and snippet sizes of a SearchService.
// Zero fields select the domain defaults.
type SearchOptions struct {
	DefaultLimit         int
	FallbackLimit        int
	FallbackSnippetChars int
}

// SearchService answers queries from the search index and falls back to a
// substring scan of the record store when the index has no hits.
type SearchService struct {
	records driven.RecordStore
	index   driven.SearchIndex
	opts    SearchOptions
}

// NewSearchService creates a new search service.
// The index parameter is optional (can be nil); every query then uses the fallback scan.
func NewSearchService(records driven.RecordStore, index driven.SearchIndex, opts SearchOptions) *SearchService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = domain.DefaultSearchLimit
	}
	if opts.FallbackLimit <= 0 {
		opts.FallbackLimit = domain.DefaultFallbackLimit
	}
	if opts.FallbackSnippetChars <= 0 {
		opts.FallbackSnippetChars = domain.DefaultFallbackSnippetChars
	}
	return &SearchService{records: records, index: index, opts: opts}
}

// Search runs query against the index, then the fallback scan.
// It never fails: every error is logged and yields an empty result.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	logger.Debug("Limit: %d", limit)

	hits := s.indexSearch(ctx, query, limit)
	if len(hits) > 0 {
		results := s.hydrateResults(ctx, hits)
		logger.Debug("Hydrated results: %d of %d hits", len(results), len(hits))
		return results, nil
	}

	logger.Debug("Index returned 0 hits; using fallback scan")
	return s.fallback(ctx, query), nil
}

// indexSearch queries the index, treating any failure as no hits.
func (s *SearchService) indexSearch(ctx context.Context, query string, limit int) []domain.SearchHit {
	if s.index == nil {
		logger.Debug("Search index unavailable")
		return nil
	}
	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		logger.Warn("Index search failed for %q: %v", query, err)
		return nil
	}
	return hits
}

// hydrateResults joins hits with their records. Hits whose record is gone
// or unreadable are skipped.
func (s *SearchService) hydrateResults(ctx context.Context, hits []domain.SearchHit) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		doc, err := s.records.Get(ctx, hit.ID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Hydrate hit %d: %v", hit.ID, err)
			}
			continue
		}
		tags := doc.Tags
		if tags == "" {
			tags = hit.Tags
		}
		results = append(results, domain.SearchResult{
			ID:       doc.ID,
			Title:    doc.Title,
			Snippet:  hit.Snippet,
			FileKey:  doc.FileKey,
			Filename: doc.Filename(),
			Tags:     tags,
			Score:    hit.Score,
			Source:   domain.SourceIndex,
		})
	}
	return results
}

// fallback scans records for a case-insensitive substring match.
func (s *SearchService) fallback(ctx context.Context, query string) []domain.SearchResult {
	docs, err := s.records.FilterContains(ctx, query, s.opts.FallbackLimit)
	if err != nil {
		logger.Warn("Fallback search failed for %q: %v", query, err)
		return []domain.SearchResult{}
	}

	results := make([]domain.SearchResult, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		results = append(results, domain.SearchResult{
			ID:       doc.ID,
			Title:    doc.Title,
			Snippet:  fallbackSnippet(doc.Content, s.opts.FallbackSnippetChars),
			FileKey:  doc.FileKey,
			Filename: doc.Filename(),
			Tags:     doc.Tags,
			Source:   domain.SourceFallback,
		})
	}
	logger.Debug("Fallback results: %d", len(results))
	return results
}

// fallbackSnippet returns the first n runes of content with newlines flattened.
func fallbackSnippet(content string, n int) string {
	runes := []rune(content)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.ReplaceAll(string(runes), "\n", " ")
}
