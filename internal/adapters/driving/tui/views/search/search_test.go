package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
	queries    []string
}

func (m *MockSearchService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return []domain.SearchResult{}, nil
}

func testSearchResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: 7, Title: "Campaign Brief", Filename: "brief.pdf", Tags: "Marketing",
			Snippet: "spring <mark>campaign</mark>", Score: 1.2, Source: domain.SourceIndex},
		{ID: 4, Title: "Ads Plan", Filename: "ads.docx", Tags: "Marketing",
			Snippet: "<mark>campaign</mark> budget", Score: 0.8, Source: domain.SourceIndex},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeQuery(v *View, q string) {
	for _, r := range q {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// submit types q, presses enter and feeds the resulting message back.
func submit(t *testing.T, v *View, q string) tea.Msg {
	t.Helper()
	typeQuery(v, q)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	v.Update(msg)
	return msg
}

func readyView(svc *MockSearchService) *View {
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), svc)
	v.SetDimensions(100, 40)
	return v
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &MockSearchService{})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Query())
	assert.True(t, view.InputFocused())
	assert.NotNil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, view, view.WithContext(ctx))
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, view.Ready())
	assert.Equal(t, 120, view.Width())
	assert.Equal(t, 40, view.Height())
}

func TestView_View_NotReady(t *testing.T) {
	assert.Equal(t, "Initialising...", NewView(nil, nil, nil).View())
}

func TestView_Search_ShowsResults(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
			return testSearchResults(), nil
		},
	}
	view := readyView(svc)

	msg := submit(t, view, "campaign")

	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "campaign", completed.Query)
	assert.Equal(t, []string{"campaign"}, svc.queries)
	assert.Len(t, view.Results(), 2)
	assert.Equal(t, "campaign", view.LastQuery())
	assert.False(t, view.InputFocused())
	assert.NoError(t, view.Err())

	out := view.View()
	assert.Contains(t, out, "Campaign Brief")
	assert.Contains(t, out, "2 results")
	assert.NotContains(t, out, "substring match")
}

func TestView_Search_TrimsQuery(t *testing.T) {
	svc := &MockSearchService{}
	view := readyView(svc)

	submit(t, view, "  seo  ")

	assert.Equal(t, []string{"seo"}, svc.queries)
}

func TestView_Search_BlankQueryDoesNothing(t *testing.T) {
	svc := &MockSearchService{}
	view := readyView(svc)

	typeQuery(view, "   ")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, svc.queries)
	assert.True(t, view.InputFocused())
}

func TestView_Search_FallbackResults(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
			return []domain.SearchResult{
				{ID: 1, Title: "Notes", Filename: "notes.txt", Snippet: "seasonal plan", Source: domain.SourceFallback},
			}, nil
		},
	}
	view := readyView(svc)

	submit(t, view, "seaso")

	assert.Contains(t, view.View(), "substring match")
}

func TestView_Search_NoResults(t *testing.T) {
	view := readyView(&MockSearchService{})

	submit(t, view, "zzz")

	assert.Contains(t, view.View(), `No documents match "zzz"`)
}

func TestView_Search_Error(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
			return nil, errors.New("index closed")
		},
	}
	view := readyView(svc)

	submit(t, view, "campaign")

	require.Error(t, view.Err())
	assert.Contains(t, view.View(), "index closed")
	assert.True(t, view.InputFocused())
}

func TestView_Search_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(100, 40)

	msg := submit(t, view, "campaign")

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoSearchService)
	assert.ErrorIs(t, view.Err(), ErrNoSearchService)
}

func TestView_ClearError(t *testing.T) {
	view := readyView(&MockSearchService{})
	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})
	require.Error(t, view.Err())

	view.ClearError()

	assert.NoError(t, view.Err())
}

func TestView_Escape_ReturnsToMenu(t *testing.T) {
	view := readyView(&MockSearchService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func resultsView(t *testing.T) *View {
	t.Helper()
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
			return testSearchResults(), nil
		},
	}
	view := readyView(svc)
	submit(t, view, "campaign")
	return view
}

func TestView_Results_Navigation(t *testing.T) {
	view := resultsView(t)

	view.Update(runes("j"))
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Results_EnterOpensDocument(t *testing.T) {
	view := resultsView(t)
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentSelected{ID: 4, From: messages.ViewSearch}, cmd())
}

func TestView_Results_NewSearch(t *testing.T) {
	view := resultsView(t)

	view.Update(runes("n"))

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())

	typeQuery(view, "n")
	assert.Equal(t, "n", view.Query(), "n types into the input once focused")
}

func TestView_Reset(t *testing.T) {
	view := resultsView(t)

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Results())
	assert.Equal(t, "", view.LastQuery())
	assert.NoError(t, view.Err())
}

func TestView_SetQuery(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetQuery("roadmap")

	assert.Equal(t, "roadmap", view.Query())
}
