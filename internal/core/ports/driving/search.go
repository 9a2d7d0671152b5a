package driving

import (
	"context"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search queries the index and falls back to a substring scan when the
	// index yields nothing. An empty query returns no results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
