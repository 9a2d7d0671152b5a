package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.ResultCount())
	assert.Equal(t, defaultWidth, bar.Width())
}

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_Setters(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateSearching)
	bar.SetMessage("boom")
	bar.SetResultCount(3)
	bar.SetFallback(true)
	bar.SetWidth(100)

	assert.Equal(t, StateSearching, bar.State())
	assert.Equal(t, "boom", bar.Message())
	assert.Equal(t, 3, bar.ResultCount())
	assert.True(t, bar.Fallback())
	assert.Equal(t, 100, bar.Width())

	bar.Clear()
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Zero(t, bar.ResultCount())
	assert.False(t, bar.Fallback())
	assert.Equal(t, 100, bar.Width())
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		contains []string
		excludes []string
	}{
		{
			name:     "ready",
			setup:    func(*Bar) {},
			contains: []string{"Ready", "q: quit", "?: help"},
		},
		{
			name:     "searching",
			setup:    func(b *Bar) { b.SetState(StateSearching) },
			contains: []string{"Searching..."},
		},
		{
			name:     "error without message",
			setup:    func(b *Bar) { b.SetState(StateError) },
			contains: []string{"Error"},
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("index closed")
			},
			contains: []string{"Error: index closed"},
		},
		{
			name:     "help",
			setup:    func(b *Bar) { b.SetState(StateHelp) },
			contains: []string{"Help"},
		},
		{
			name: "index results",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetResultCount(5)
			},
			contains: []string{"5 results", "new search", "open"},
			excludes: []string{"substring match"},
		},
		{
			name: "fallback results",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetResultCount(2)
				b.SetFallback(true)
			},
			contains: []string{"2 results (substring match)"},
		},
		{
			name: "empty results keep short help",
			setup: func(b *Bar) {
				b.SetState(StateResults)
			},
			contains: []string{"Ready", "quit"},
			excludes: []string{"new search"},
		},
		{
			name: "documents",
			setup: func(b *Bar) {
				b.SetState(StateDocuments)
				b.SetResultCount(7)
			},
			contains: []string{"7 documents", "delete", "reload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			tt.setup(bar)

			view := bar.View()
			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, view, s)
			}
		})
	}
}

func TestBar_ViewNarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
}
