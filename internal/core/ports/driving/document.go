package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// DocumentService manages the document lifecycle.
type DocumentService interface {
	// Upload stores the file, creates its record and enriches it.
	// Only a failed blob write or record insert is returned as an error;
	// later step failures are listed in the result report.
	Upload(ctx context.Context, req domain.UploadRequest, r io.Reader) (*domain.UploadResult, error)

	// Delete removes the file, the record and the index entry.
	// Returns domain.ErrNotFound if the record does not exist.
	Delete(ctx context.Context, id int64) (*domain.DeleteResult, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Stats summarises the repository.
	Stats(ctx context.Context) (*domain.Stats, error)

	// OpenFile returns the stored file of a document.
	OpenFile(ctx context.Context, id int64) (io.ReadCloser, *domain.Document, error)
}
