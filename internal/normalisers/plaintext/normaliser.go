package plaintext

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

// MaxFileSize caps how much of a file is read as text.
const MaxFileSize = 32 << 20

// Normaliser handles plain text files.
// It is also the fallback for extensions no other normaliser claims.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{
		".txt",
		".text",
		".log",
		".csv",
		".tsv",
		".json",
		".xml",
		".yaml",
		".yml",
		".toml",
		".ini",
		".go",
		".py",
		".js",
		".ts",
		".sql",
		".sh",
	}
}

// Extract returns the file content with invalid UTF-8 sequences dropped.
func (n *Normaliser) Extract(_ context.Context, path string) (string, error) {
	data, err := ReadLimited(path)
	if err != nil {
		return "", err
	}
	return Decode(data), nil
}

// ReadLimited reads at most MaxFileSize bytes from path.
func ReadLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", domain.ErrExtraction, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrExtraction, err)
	}
	return data, nil
}

// Decode converts bytes to text, skipping invalid UTF-8 and a leading BOM.
func Decode(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	return strings.TrimPrefix(text, "\ufeff")
}
