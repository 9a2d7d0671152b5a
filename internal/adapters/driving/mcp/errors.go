package mcp

import "errors"

// ErrMissingSearchService means Ports.Search is nil.
var ErrMissingSearchService = errors.New("mcp: search service is required")
