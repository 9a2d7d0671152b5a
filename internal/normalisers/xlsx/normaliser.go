// Package xlsx extracts cell values from Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

// Normaliser handles XLSX and XLSM workbooks.
type Normaliser struct{}

// New creates a new workbook normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".xlsx", ".xlsm"}
}

// Extract returns every non-empty cell, one per line, sheet by sheet and
// row by row.
func (n *Normaliser) Extract(ctx context.Context, path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: open workbook: %v", domain.ErrExtraction, err)
	}
	defer f.Close()

	var cells []string
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: read sheet %q: %v", domain.ErrExtraction, sheet, err)
		}
		for _, row := range rows {
			for _, cell := range row {
				if cell != "" {
					cells = append(cells, cell)
				}
			}
		}
	}
	return strings.Join(cells, "\n"), nil
}
