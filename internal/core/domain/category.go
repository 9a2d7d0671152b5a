package domain

import (
	"path/filepath"
	"strings"
)

// FileCategory is the coarse kind of an uploaded file.
type FileCategory string

// Available file categories.
const (
	CategoryDocument FileCategory = "document"
	CategoryImage    FileCategory = "image"
	CategoryVideo    FileCategory = "video"
	CategoryOther    FileCategory = "other"
)

var categoryByExtension = map[string]FileCategory{
	".pdf":  CategoryDocument,
	".docx": CategoryDocument,
	".doc":  CategoryDocument,
	".txt":  CategoryDocument,
	".pptx": CategoryDocument,
	".ppt":  CategoryDocument,
	".xlsx": CategoryDocument,
	".xls":  CategoryDocument,
	".png":  CategoryImage,
	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".bmp":  CategoryImage,
	".gif":  CategoryImage,
	".webp": CategoryImage,
	".svg":  CategoryImage,
	".mp4":  CategoryVideo,
	".mov":  CategoryVideo,
	".mkv":  CategoryVideo,
	".avi":  CategoryVideo,
	".webm": CategoryVideo,
}

// IsValid returns true if the category is recognised.
func (c FileCategory) IsValid() bool {
	switch c {
	case CategoryDocument, CategoryImage, CategoryVideo, CategoryOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c FileCategory) String() string {
	return string(c)
}

// CategoryForFilename derives a category from the file extension.
// Unknown extensions keep current when it is set, otherwise CategoryOther.
func CategoryForFilename(name string, current FileCategory) FileCategory {
	ext := strings.ToLower(filepath.Ext(name))
	if c, ok := categoryByExtension[ext]; ok {
		return c
	}
	if current != "" {
		return current
	}
	return CategoryOther
}
