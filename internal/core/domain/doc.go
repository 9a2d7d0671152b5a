// Package domain defines the core business entities for docshelf.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded file with its extracted text and tags
//   - IndexEntry: The projection of a Document held by the search index
//   - SearchHit / SearchResult: Index-side hits and display-ready results
//   - KeywordRule: A tag and the substrings that trigger it
//   - OperationReport: Secondary steps that failed during an operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
