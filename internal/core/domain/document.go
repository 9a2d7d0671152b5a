package domain

import (
	"path"
	"strings"
	"time"
)

// Document is an uploaded file together with its extracted text and tags.
// The record store owns it; the search index holds a projection of it.
type Document struct {
	// ID is assigned by the record store on creation and never changes.
	// It is the join key between the record store and the search index.
	ID int64

	// Title is the human-readable title.
	Title string

	// FileKey is the opaque blob store key of the uploaded file.
	FileKey string

	// Content is the extracted plain text. Empty when extraction failed.
	Content string

	// Tags is a comma-separated tag list with set semantics.
	Tags string

	// FileType is the coarse category derived from the file extension.
	FileType FileCategory

	// CreatedAt is when the record was first persisted.
	CreatedAt time.Time
}

// Filename returns the last path element of the blob key.
func (d Document) Filename() string {
	if d.FileKey == "" {
		return ""
	}
	return path.Base(d.FileKey)
}

// TagList returns the document tags as a slice.
func (d Document) TagList() []string {
	return ParseTags(d.Tags)
}

// HasTags reports whether any non-blank tag is set.
func (d Document) HasTags() bool {
	return strings.TrimSpace(d.Tags) != ""
}

// IndexEntry is what the search index stores for one document.
// At most one entry exists per ID.
type IndexEntry struct {
	ID      int64
	Title   string
	Content string
	Tags    string
}

// EntryFromDocument projects a document onto its index entry.
func EntryFromDocument(d Document) IndexEntry {
	return IndexEntry{
		ID:      d.ID,
		Title:   d.Title,
		Content: d.Content,
		Tags:    d.Tags,
	}
}

// ParseTags splits a comma-separated tag string, trimming blanks.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// JoinTags renders tags as the comma-separated storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// Stats summarises the repository.
type Stats struct {
	// TotalDocuments is the record store count.
	TotalDocuments int

	// IndexedDocuments is the search index count. -1 when the index is unavailable.
	IndexedDocuments int64

	// LastUploaded is the newest document, nil when the store is empty.
	LastUploaded *Document
}
