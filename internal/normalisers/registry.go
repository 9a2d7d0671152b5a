package normalisers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/logger"
	"github.com/custodia-labs/docshelf/internal/normalisers/docx"
	"github.com/custodia-labs/docshelf/internal/normalisers/html"
	"github.com/custodia-labs/docshelf/internal/normalisers/markdown"
	"github.com/custodia-labs/docshelf/internal/normalisers/pdf"
	"github.com/custodia-labs/docshelf/internal/normalisers/plaintext"
	"github.com/custodia-labs/docshelf/internal/normalisers/pptx"
	"github.com/custodia-labs/docshelf/internal/normalisers/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// Registry selects an extractor by file extension.
type Registry struct {
	byExt    map[string]driven.Extractor
	fallback driven.Extractor
}

// NewRegistry creates a registry. Files whose extension no extractor
// claims are read by fallback unless they are images or video.
// A nil fallback disables that.
func NewRegistry(fallback driven.Extractor, extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byExt:    make(map[string]driven.Extractor),
		fallback: fallback,
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Default returns a registry with every built-in normaliser.
func Default() *Registry {
	text := plaintext.New()
	return NewRegistry(text,
		text,
		docx.New(),
		pptx.New(),
		xlsx.New(),
		pdf.New(),
		html.New(),
		markdown.New(),
	)
}

// Register adds e for each of its extensions, replacing earlier entries.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Extensions returns the number of registered extensions.
func (r *Registry) Extensions() int {
	return len(r.byExt)
}

// ExtractorFor returns the extractor that handles path. Media files, and
// unclaimed extensions when there is no fallback, fail with
// domain.ErrUnsupportedType.
func (r *Registry) ExtractorFor(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if e, ok := r.byExt[ext]; ok {
		return e, nil
	}
	switch domain.CategoryForFilename(path, domain.CategoryOther) {
	case domain.CategoryImage, domain.CategoryVideo:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext)
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext)
	}
	return r.fallback, nil
}

// Extract returns the text of the file at path. Missing files,
// unsupported formats and decoder failures all yield "".
func (r *Registry) Extract(ctx context.Context, path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debug("Extract: file not readable %s: %v", path, err)
		return ""
	}

	e, err := r.ExtractorFor(path)
	if err != nil {
		logger.Debug("Extract %s: %v", filepath.Base(path), err)
		return ""
	}

	text, err := e.Extract(ctx, path)
	if err != nil {
		logger.Warn("Extract %s failed: %v", filepath.Base(path), err)
		return ""
	}
	return text
}
