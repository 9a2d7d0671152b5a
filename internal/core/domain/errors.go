package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the search index cannot be opened or created.
	// Uploads and deletes proceed without indexing; search uses the fallback scan.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrIndexClosed indicates an operation on a search index that has been closed.
	ErrIndexClosed = errors.New("search index closed")

	// ErrQueryParse indicates a search query could not be parsed.
	// Never surfaced to users; the query engine retries and then reports no hits.
	ErrQueryParse = errors.New("query parse failed")

	// ErrExtraction indicates a decoder failed to read text from a file.
	// Absorbed at the extractor boundary.
	ErrExtraction = errors.New("text extraction failed")

	// ErrUnsupportedType indicates no extractor handles a file extension.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrBlobNotFound indicates a stored file is missing from the blob store.
	ErrBlobNotFound = errors.New("blob not found")
)
