package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/services"
	"github.com/custodia-labs/docshelf/internal/normalisers"
)

// setupWithoutIndex wires services that have no search index.
func setupWithoutIndex(t *testing.T) {
	t.Helper()
	clearServices(t)

	records := memory.NewRecordStore()
	blobs, err := blob.NewStore(t.TempDir())
	require.NoError(t, err)
	SetServices(&Services{
		Search:   services.NewSearchService(records, nil, services.SearchOptions{}),
		Document: services.NewDocumentService(records, blobs, normalisers.Default(), services.NewTagger(nil), nil),
		Index:    services.NewIndexService(records, nil),
	})
	t.Cleanup(func() { SetServices(nil) })
}

func TestStatsCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Documents: 0\n")
	assert.Contains(t, out, "Indexed:   0\n")
	assert.NotContains(t, out, "Last upload")
}

func TestStatsCmd_AfterUploads(t *testing.T) {
	setupTestServices(t)
	seedDocuments(t)

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Documents: 2\n")
	assert.Contains(t, out, "Indexed:   2\n")
	assert.Contains(t, out, "Last upload: promo (promo.txt, id 2)")
}

func TestStatsCmd_IndexUnavailable(t *testing.T) {
	setupWithoutIndex(t)

	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed:   unavailable")
}

func TestUploadCmd_WithoutIndexWarns(t *testing.T) {
	setupWithoutIndex(t)
	path := writeFile(t, "brief.txt", "Spring marketing campaign")

	out, err := execute(t, "upload", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded "+path+" as document 1")
	assert.Contains(t, out, "Warning: "+string(domain.StepIndexUpsert))

	out, err = execute(t, "search", "spring")
	require.NoError(t, err)
	assert.Contains(t, out, "Results (substring match):")
}
