package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docshelf/internal/core/domain"
)

func testDocs() []domain.Document {
	return []domain.Document{
		{ID: 2, Title: "Spring Campaign", FileKey: "docs/spring.txt", Tags: "Marketing",
			Content: "Spring marketing campaign with social media ads", FileType: domain.CategoryDocument},
		{ID: 1, Title: "Pricing", FileKey: "docs/pricing.txt", Tags: "Sales",
			Content: "New pricing with a seasonal discount", FileType: domain.CategoryDocument},
	}
}

func newTestApp(t *testing.T) (*App, *MockDocumentService) {
	t.Helper()
	docs := &MockDocumentService{docs: testDocs()}
	search := &MockSearchService{Results: []domain.SearchResult{
		{ID: 2, Title: "Spring Campaign", Filename: "spring.txt", Snippet: "<mark>campaign</mark>",
			Score: 1, Source: domain.SourceIndex},
	}}
	app, err := NewApp(&Ports{Search: search, Document: docs})
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, docs
}

// send delivers msg and then every message its commands produce, depth first.
// Batches are expanded; cursor blinks and window title commands are dropped.
func send(app *App, msg tea.Msg) {
	_, cmd := app.Update(msg)
	run(app, cmd)
}

func run(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := execute(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			run(app, c)
		}
	case messages.SearchCompleted, messages.DocumentsLoaded, messages.DocumentDeleted,
		messages.DocumentContentLoaded, messages.DocumentSelected, messages.StatsLoaded,
		messages.ViewChanged, messages.ErrorOccurred:
		send(app, msg)
	}
}

// execute runs cmd, giving up on commands that wait on a timer.
func execute(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func keys(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&Ports{Search: &MockSearchService{}})

	require.NoError(t, err)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	_, err := NewApp(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)

	_, err = NewApp(&Ports{Document: &MockDocumentService{}})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init_LoadsStats(t *testing.T) {
	app, _ := newTestApp(t)

	run(app, app.Init())

	assert.Contains(t, app.View(), "2 documents, last upload: Spring Campaign")
}

func TestApp_Init_WithoutDocumentService(t *testing.T) {
	app, err := NewApp(&Ports{Search: &MockSearchService{}})
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Search: &MockSearchService{}})
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(keys("ctrl+c"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_SearchAndOpenResult(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, keys("enter")) // menu: Search
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	for _, r := range "campaign" {
		send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	send(app, keys("enter"))
	assert.Contains(t, app.View(), "Spring Campaign")
	assert.NoError(t, app.Err())

	send(app, keys("enter"))
	require.Equal(t, messages.ViewDocContent, app.CurrentView())
	assert.Contains(t, app.View(), "social media ads")

	send(app, keys("esc"))
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Contains(t, app.View(), "Spring Campaign", "results survive returning from a document")

	send(app, keys("esc"))
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_SearchError(t *testing.T) {
	app, err := NewApp(&Ports{Search: &MockSearchService{Err: errors.New("index closed")}})
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	send(app, messages.ViewChanged{View: messages.ViewSearch})
	send(app, keys("x"))
	send(app, keys("enter"))

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "index closed")
}

func TestApp_DocumentsDeleteFlow(t *testing.T) {
	app, docs := newTestApp(t)

	send(app, keys("down"))
	send(app, keys("enter")) // menu: Documents
	require.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Contains(t, app.View(), "Documents (2)")

	send(app, keys("d"))
	send(app, keys("y"))

	list, err := docs.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Contains(t, app.View(), "Documents (1)")
	assert.Contains(t, app.View(), "Deleted document 2")

	send(app, keys("esc"))
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "1 documents")
}

func TestApp_DocumentsOpenAndReturn(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, messages.ViewChanged{View: messages.ViewDocuments})
	send(app, keys("down"))
	send(app, keys("enter"))

	require.Equal(t, messages.ViewDocContent, app.CurrentView())
	assert.Contains(t, app.View(), "seasonal discount")

	send(app, keys("esc"))
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
}

func TestApp_DocumentsWithoutService(t *testing.T) {
	app, err := NewApp(&Ports{Search: &MockSearchService{}})
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	send(app, messages.ViewChanged{View: messages.ViewDocuments})

	assert.Contains(t, app.View(), "document service not available")
}

func TestApp_Help(t *testing.T) {
	app, _ := newTestApp(t)

	send(app, messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Help")
	assert.Contains(t, app.View(), "tags:seo")

	send(app, keys("esc"))
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
}
