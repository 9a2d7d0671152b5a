package driven

import (
	"context"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// SearchIndex provides full-text search over index entries.
// Backed by bleve. A single writer is allowed at a time; readers never
// observe a partially rebuilt index.
type SearchIndex interface {
	// Upsert adds or replaces the entry with the same ID.
	Upsert(ctx context.Context, entry domain.IndexEntry) error

	// Delete removes the entry with id. Deleting an absent id succeeds.
	Delete(ctx context.Context, id int64) error

	// Rebuild replaces the whole index with entries.
	// Readers see the old or the new index, never a mix.
	Rebuild(ctx context.Context, entries []domain.IndexEntry) error

	// Search runs a free-text query over title, content and tags and
	// returns at most limit hits in descending score order.
	// Unparseable queries produce no hits rather than an error.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)

	// Count returns the number of indexed entries.
	Count() (uint64, error)

	// Close releases resources. Later calls return domain.ErrIndexClosed.
	Close() error
}
