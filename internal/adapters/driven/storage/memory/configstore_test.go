package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	s := NewConfigStore()
	require.NoError(t, s.Set("http.addr", ":9000"))
	require.NoError(t, s.Set("search.default_limit", int64(40)))
	require.NoError(t, s.Set("watch.rate_per_sec", 1.5))
	require.NoError(t, s.Set("search.fallback_limit", 25))

	assert.Equal(t, ":9000", s.GetString("http.addr"))
	assert.Equal(t, 40, s.GetInt("search.default_limit"))
	assert.Equal(t, 25, s.GetInt("search.fallback_limit"))
	assert.InDelta(t, 1.5, s.GetFloat("watch.rate_per_sec"), 1e-9)
	assert.InDelta(t, 40.0, s.GetFloat("search.default_limit"), 1e-9)
}

func TestConfigStore_MissingAndMistyped(t *testing.T) {
	s := NewConfigStore()
	require.NoError(t, s.Set("http.addr", 8000))
	require.NoError(t, s.Set("search.default_limit", "thirty"))

	_, ok := s.Get("data_dir")
	assert.False(t, ok)
	assert.Empty(t, s.GetString("data_dir"))
	assert.Empty(t, s.GetString("http.addr"))
	assert.Zero(t, s.GetInt("search.default_limit"))
	assert.Zero(t, s.GetFloat("missing"))
}

func TestConfigStore_PersistenceIsNoop(t *testing.T) {
	s := NewConfigStore()
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Save())
	require.NoError(t, s.Load())

	assert.Equal(t, "v", s.GetString("k"))
	assert.Equal(t, ":memory:", s.Path())
}
