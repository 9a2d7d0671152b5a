package domain

// DefaultSearchLimit is the number of hits returned when no limit is given.
const DefaultSearchLimit = 30

// DefaultFallbackLimit caps the substring scan used when the index has no hits.
const DefaultFallbackLimit = 50

// DefaultFallbackSnippetChars is the content prefix shown for fallback results.
const DefaultFallbackSnippetChars = 400

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means DefaultSearchLimit.
	Limit int
}

// SearchHit is a single ranked hit from the search index.
type SearchHit struct {
	ID      int64
	Title   string
	Snippet string
	Tags    string
	Score   float64
}

// ResultSource records which path produced a search result.
type ResultSource string

// Result sources.
const (
	SourceIndex    ResultSource = "index"
	SourceFallback ResultSource = "fallback"
)

// SearchResult is a display-ready search hit.
type SearchResult struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Snippet  string       `json:"snippet"`
	FileKey  string       `json:"file"`
	Filename string       `json:"filename"`
	Tags     string       `json:"tags"`
	Score    float64      `json:"score"`
	Source   ResultSource `json:"source"`
}
