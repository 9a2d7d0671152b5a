package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_PutAndResolve(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	key, err := s.Put(ctx, "report.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "docs/report.pdf", key)

	p, err := s.LocalPath(key)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root(), "docs", "report.pdf"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestStore_PutCollisionGetsSuffix(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	k1, err := s.Put(ctx, "a.txt", strings.NewReader("one"))
	require.NoError(t, err)
	k2, err := s.Put(ctx, "a.txt", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
	assert.True(t, strings.HasPrefix(k2, "docs/a_"))
	assert.True(t, strings.HasSuffix(k2, ".txt"))

	rc, err := s.Open(ctx, k1)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestStore_PutStripsDirectories(t *testing.T) {
	s := setupTestStore(t)

	key, err := s.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "docs/passwd", key)

	key, err = s.Put(context.Background(), `C:\Users\me\notes.txt`, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "docs/notes.txt", key)
}

func TestStore_PutRejectsEmptyName(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.Put(context.Background(), " ", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_PutCancelled(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "a.txt", strings.NewReader("x"))
	require.Error(t, err)

	_, err = s.LocalPath("docs/a.txt")
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	key, err := s.Put(ctx, "a.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, key))
	assert.ErrorIs(t, s.Delete(ctx, key), domain.ErrBlobNotFound)
	_, err = s.LocalPath(key)
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestStore_RejectsEscapingKeys(t *testing.T) {
	s := setupTestStore(t)

	for _, key := range []string{"../secret", "docs/../../x", "/etc/passwd", "other/a.txt"} {
		_, err := s.LocalPath(key)
		assert.ErrorIs(t, err, domain.ErrBlobNotFound, key)
	}
}

func TestStore_DotsInsideFilename(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	key, err := s.Put(ctx, "Q1..Q2 report.txt", strings.NewReader("quarterly"))
	require.NoError(t, err)
	assert.Equal(t, "docs/Q1..Q2 report.txt", key)

	p, err := s.LocalPath(key)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "quarterly", string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.LocalPath(key)
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}
