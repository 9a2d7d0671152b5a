// Package blob provides a filesystem-backed blob store for uploaded files.
//
// Files live under <root>/docs/. Keys are slash-separated paths relative to
// root, such as "docs/report.pdf", and are what the record store keeps.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

const keyPrefix = "docs"

// Store keeps uploaded files on the local filesystem.
type Store struct {
	root string
}

// NewStore creates the blob directory under root.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, keyPrefix), 0o700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory that keys are relative to.
func (s *Store) Root() string {
	return s.root
}

// Put writes r to docs/<filename>. When that name is taken a short random
// suffix is added before the extension.
func (s *Store) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", domain.ErrInvalidInput)
	}

	key := path.Join(keyPrefix, name)
	f, err := s.create(key)
	for attempt := 0; errors.Is(err, os.ErrExist) && attempt < 5; attempt++ {
		ext := path.Ext(name)
		key = path.Join(keyPrefix, fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), uuid.NewString()[:8], ext))
		f, err = s.create(key)
	}
	if err != nil {
		return "", fmt.Errorf("creating blob: %w", err)
	}

	if _, err := io.Copy(f, contextReader{ctx: ctx, r: r}); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("closing blob: %w", err)
	}
	return key, nil
}

func (s *Store) create(key string) (*os.File, error) {
	return os.OpenFile(filepath.Join(s.root, filepath.FromSlash(key)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
}

// LocalPath resolves key to a file under root.
func (s *Store) LocalPath(key string) (string, error) {
	p, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", domain.ErrBlobNotFound
	}
	return p, nil
}

// Open returns the stored file.
func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.LocalPath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Delete removes the stored file.
func (s *Store) Delete(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrBlobNotFound
		}
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}

// resolve maps a key to a path, rejecting keys that escape docs/.
func (s *Store) resolve(key string) (string, error) {
	clean := path.Clean(key)
	if clean != key || !strings.HasPrefix(clean, keyPrefix+"/") || slices.Contains(strings.Split(clean, "/"), "..") {
		return "", fmt.Errorf("%w: bad blob key %q", domain.ErrBlobNotFound, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// sanitizeFilename keeps the last path element and drops separators.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// contextReader stops a copy when ctx is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
