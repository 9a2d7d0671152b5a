package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Filename(t *testing.T) {
	assert.Equal(t, "q3.pdf", Document{FileKey: "docs/q3.pdf"}.Filename())
	assert.Equal(t, "", Document{}.Filename())
}

func TestDocument_HasTags(t *testing.T) {
	assert.False(t, Document{Tags: "  "}.HasTags())
	assert.True(t, Document{Tags: "SEO"}.HasTags())
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "SEO", []string{"SEO"}},
		{"trims and drops empties", " Design, ,Sales ,", []string{"Design", "Sales"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}

func TestEntryFromDocument(t *testing.T) {
	d := Document{ID: 7, Title: "Launch", Content: "body", Tags: "Product", FileKey: "docs/a.txt"}
	assert.Equal(t, IndexEntry{ID: 7, Title: "Launch", Content: "body", Tags: "Product"}, EntryFromDocument(d))
}

func TestCategoryForFilename(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		current FileCategory
		want    FileCategory
	}{
		{"pdf", "report.pdf", "", CategoryDocument},
		{"upper case extension", "PHOTO.JPG", "", CategoryImage},
		{"video", "clip.webm", "", CategoryVideo},
		{"unknown keeps current", "archive.zip", CategoryImage, CategoryImage},
		{"unknown defaults to other", "archive.zip", "", CategoryOther},
		{"no extension", "README", "", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryForFilename(tt.file, tt.current))
		})
	}
}

func TestFileCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryVideo.IsValid())
	assert.False(t, FileCategory("audio").IsValid())
}
