package driving

import "context"

// IndexService maintains the search index.
type IndexService interface {
	// Rebuild reindexes every record and returns how many were indexed.
	Rebuild(ctx context.Context) (int, error)

	// Available reports whether a search index is attached.
	Available() bool
}
