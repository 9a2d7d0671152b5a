package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

func TestReindexCmd_RebuildsIndex(t *testing.T) {
	setupTestServices(t)
	seedDocuments(t)

	out, err := execute(t, "reindex")
	require.NoError(t, err)
	assert.Contains(t, out, "Reindexed 2 documents.")

	out, err = execute(t, "search", "discount")
	require.NoError(t, err)
	assert.Contains(t, out, "Results:\n")
	assert.Contains(t, out, "promo")
}

func TestReindexCmd_IndexUnavailable(t *testing.T) {
	setupWithoutIndex(t)

	_, err := execute(t, "reindex")
	require.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestReindexCmd_NoService(t *testing.T) {
	clearServices(t)

	_, err := execute(t, "reindex")
	require.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
