package driven

import (
	"context"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// RecordStore persists document records. It is the source of truth;
// the search index is derived from it.
type RecordStore interface {
	// Create inserts a new record and assigns its ID and CreatedAt.
	Create(ctx context.Context, doc *domain.Document) error

	// Save updates an existing record.
	// Returns domain.ErrNotFound if the record does not exist.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if the record does not exist.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// Delete removes a record.
	// Returns domain.ErrNotFound if the record does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns all records, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// FilterContains returns records whose title, content or tags contain
	// needle case-insensitively, newest first, at most limit.
	FilterContains(ctx context.Context, needle string, limit int) ([]domain.Document, error)

	// Latest returns the newest record.
	// Returns domain.ErrNotFound if the store is empty.
	Latest(ctx context.Context) (*domain.Document, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
