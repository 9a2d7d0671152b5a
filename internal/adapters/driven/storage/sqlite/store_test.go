package sqlite

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docshelf-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func createDoc(t *testing.T, records driven.RecordStore, doc domain.Document) domain.Document {
	t.Helper()
	require.NoError(t, records.Create(context.Background(), &doc))
	return doc
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	v, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	doc := createDoc(t, store.RecordStore(), domain.Document{Title: "durable"})
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.RecordStore().Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Title)

	v, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestRecordStore_CreateAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()

	doc := createDoc(t, records, domain.Document{
		Title:    "Q3 Report",
		FileKey:  "docs/q3.pdf",
		Content:  "revenue",
		Tags:     "Sales",
		FileType: domain.CategoryDocument,
	})
	assert.Positive(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := records.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Report", got.Title)
	assert.Equal(t, "docs/q3.pdf", got.FileKey)
	assert.Equal(t, "revenue", got.Content)
	assert.Equal(t, "Sales", got.Tags)
	assert.Equal(t, domain.CategoryDocument, got.FileType)
	assert.WithinDuration(t, doc.CreatedAt, got.CreatedAt, time.Second)
}

func TestRecordStore_CreateDefaultsFileType(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	doc := createDoc(t, store.RecordStore(), domain.Document{Title: "x"})
	assert.Equal(t, domain.CategoryOther, doc.FileType)
}

func TestRecordStore_Save(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()

	doc := createDoc(t, records, domain.Document{Title: "draft"})
	doc.Content = "extracted"
	doc.Tags = "Design,SEO"
	doc.FileType = domain.CategoryImage
	require.NoError(t, records.Save(ctx, &doc))

	got, err := records.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "extracted", got.Content)
	assert.Equal(t, "Design,SEO", got.Tags)
	assert.Equal(t, domain.CategoryImage, got.FileType)

	missing := domain.Document{ID: 9999}
	assert.ErrorIs(t, records.Save(ctx, &missing), domain.ErrNotFound)
}

func TestRecordStore_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()

	_, err := records.Get(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, records.Delete(ctx, 404), domain.ErrNotFound)
	_, err = records.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()

	doc := createDoc(t, records, domain.Document{Title: "bye"})
	require.NoError(t, records.Delete(ctx, doc.ID))

	_, err := records.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_ListOrderAndLatest(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	createDoc(t, records, domain.Document{Title: "oldest", CreatedAt: base})
	createDoc(t, records, domain.Document{Title: "newest", CreatedAt: base.Add(2 * time.Hour)})
	createDoc(t, records, domain.Document{Title: "middle", CreatedAt: base.Add(time.Hour)})

	docs, err := records.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"newest", "middle", "oldest"},
		[]string{docs[0].Title, docs[1].Title, docs[2].Title})

	latest, err := records.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newest", latest.Title)

	n, err := records.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecordStore_FilterContains(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	createDoc(t, records, domain.Document{Title: "Budget 2025", CreatedAt: base})
	createDoc(t, records, domain.Document{Title: "notes", Content: "the BUDGET grew", CreatedAt: base.Add(time.Minute)})
	createDoc(t, records, domain.Document{Title: "tagged", Tags: "budget", CreatedAt: base.Add(2 * time.Minute)})
	createDoc(t, records, domain.Document{Title: "unrelated", Content: "nothing", CreatedAt: base.Add(3 * time.Minute)})

	docs, err := records.FilterContains(ctx, "Budget", 50)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "tagged", docs[0].Title)
	assert.Equal(t, "Budget 2025", docs[2].Title)

	docs, err = records.FilterContains(ctx, "budget", 1)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestRecordStore_FilterContainsFoldsUnicode(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()

	createDoc(t, records, domain.Document{Title: "École Überblick"})
	createDoc(t, records, domain.Document{Title: "notes", Content: "ΣΥΝΑΝΤΗΣΗ agenda"})
	createDoc(t, records, domain.Document{Title: "plain"})

	tests := []struct {
		query string
		want  string
	}{
		{query: "École", want: "École Überblick"},
		{query: "école", want: "École Überblick"},
		{query: "ÉCOLE", want: "École Überblick"},
		{query: "Überblick", want: "École Überblick"},
		{query: "überblick", want: "École Überblick"},
		{query: "συναντηση", want: "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			docs, err := records.FilterContains(ctx, tt.query, 50)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, docs)
				return
			}
			require.Len(t, docs, 1)
			assert.Equal(t, tt.want, docs[0].Title)
		})
	}
}

func TestRecordStore_FilterContainsTreatsWildcardsLiterally(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()
	ctx := context.Background()

	createDoc(t, records, domain.Document{Title: "100% done"})
	createDoc(t, records, domain.Document{Title: "plain"})

	docs, err := records.FilterContains(ctx, "%", 50)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "100% done", docs[0].Title)
}

func TestRecordStore_FallbackCap(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	records := store.RecordStore()

	for i := 0; i < 60; i++ {
		createDoc(t, records, domain.Document{Title: fmt.Sprintf("needle %d", i)})
	}

	docs, err := records.FilterContains(context.Background(), "needle", 0)
	require.NoError(t, err)
	assert.Len(t, docs, domain.DefaultFallbackLimit)
}
