package driving

// TaggingService assigns tags from text.
type TaggingService interface {
	// Tag returns the sorted, comma-joined tags whose triggers occur in text.
	Tag(text string) string
}
