// Package pptx extracts slide text from PowerPoint presentations.
package pptx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

const (
	slidePrefix = "ppt/slides/slide"
	slideSuffix = ".xml"

	drawingML = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

// Normaliser handles PPTX presentations.
type Normaliser struct{}

// New creates a new PPTX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pptx"}
}

// Extract returns the text paragraphs of every slide in slide order.
func (n *Normaliser) Extract(ctx context.Context, path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pptx: %v", domain.ErrExtraction, err)
	}
	defer reader.Close()

	var lines []string
	for _, slide := range slideFiles(&reader.Reader) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		paragraphs, err := slideText(slide)
		if err != nil {
			return "", err
		}
		lines = append(lines, paragraphs...)
	}
	return strings.Join(lines, "\n"), nil
}

type numberedSlide struct {
	num  int
	file *zip.File
}

// slideFiles returns the slide parts ordered by slide number.
func slideFiles(reader *zip.Reader) []*zip.File {
	var slides []numberedSlide
	for _, f := range reader.File {
		if !strings.HasPrefix(f.Name, slidePrefix) || !strings.HasSuffix(f.Name, slideSuffix) {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(f.Name, slidePrefix), slideSuffix))
		if err != nil {
			continue
		}
		slides = append(slides, numberedSlide{num: num, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	files := make([]*zip.File, len(slides))
	for i, s := range slides {
		files[i] = s.file
	}
	return files
}

// slideText returns the non-empty DrawingML paragraphs of one slide.
func slideText(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrExtraction, f.Name, err)
	}
	defer rc.Close()

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrExtraction, f.Name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == drawingML && t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Space != drawingML {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimSpace(current.String()); line != "" {
					paragraphs = append(paragraphs, line)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
