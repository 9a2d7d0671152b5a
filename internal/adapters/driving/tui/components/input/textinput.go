// Package input is the query field of the search view.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/styles"
)

const (
	defaultWidth = 50
	minWidth     = 20

	// labelWidth covers the "Search: " label and the field border.
	labelWidth = 12

	maxQueryLen = 512
	placeholder = `words, "a phrase", +required -excluded, tags:seo`
)

// SearchInput is a focused single-line query field with a label.
type SearchInput struct {
	field  textinput.Model
	styles *styles.Styles
	width  int
}

// NewSearchInput returns a focused, empty input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.Placeholder = placeholder
	field.CharLimit = maxQueryLen
	field.Width = defaultWidth
	field.Focus()

	return &SearchInput{field: field, styles: s, width: defaultWidth}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	return s, cmd
}

func (s *SearchInput) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.styles.Title.Render("Search: "),
		s.styles.InputField.Render(s.field.View()),
	)
}

// Value is the text as typed.
func (s *SearchInput) Value() string { return s.field.Value() }

// Query is the text with surrounding whitespace removed. A blank query
// is never sent to the search service.
func (s *SearchInput) Query() string {
	return strings.TrimSpace(s.field.Value())
}

func (s *SearchInput) SetValue(v string) { s.field.SetValue(v) }
func (s *SearchInput) Focus() tea.Cmd { return s.field.Focus() }
func (s *SearchInput) Blur() { s.field.Blur() }
func (s *SearchInput) Focused() bool { return s.field.Focused() }
func (s *SearchInput) Reset() { s.field.Reset() }

// SetWidth fits the field into width columns, never below minWidth.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.field.Width = max(width-labelWidth, minWidth)
}

func (s *SearchInput) Width() int { return s.width }
