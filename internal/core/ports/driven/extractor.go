package driven

import "context"

// TextExtractor produces plain text from a local file.
// It never fails: unreadable, missing or unsupported files yield "".
type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}

// Extractor decodes one family of file formats.
type Extractor interface {
	// Extensions returns the lower-case extensions handled, including the dot.
	Extensions() []string

	// Extract returns the text of the file at path.
	Extract(ctx context.Context, path string) (string, error)
}
