// Package styles holds the lipgloss palette of the docshelf TUI and the
// snippet renderer that turns <mark> highlights into styled text.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

var markStripper = strings.NewReplacer(markOpen, "", markClose, "")

// Theme is a colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme is a warm paper-and-ink palette for dark terminals.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#D08C60"),
		Secondary:  lipgloss.Color("#7FA99B"),
		Foreground: lipgloss.Color("#E8E2D6"),
		Muted:      lipgloss.Color("#8A8478"),
		Success:    lipgloss.Color("#9BC67F"),
		Warning:    lipgloss.Color("#F2C14E"),
		Error:      lipgloss.Color("#E0665A"),
		Border:     lipgloss.Color("#4A463F"),
		Bar:        lipgloss.Color("#2A2723"),
	}
}

// Styles are the rendered styles every view shares.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Highlight renders matched terms inside snippets.
	Highlight lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme selects DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Bar).Background(theme.Primary).Bold(true),
		Error:    fg(theme.Error),
		Success:  fg(theme.Success),
		Warning:  fg(theme.Warning),
		Help:     fg(theme.Muted).Italic(true),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Highlight: fg(theme.Warning).Bold(true).Underline(true),
	}
}

// DefaultStyles returns NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// RenderSnippet styles each <mark>...</mark> span with Highlight and the
// text between spans with Muted. An unclosed mark runs to the end.
func (s *Styles) RenderSnippet(snippet string) string {
	var b strings.Builder
	for snippet != "" {
		start := strings.Index(snippet, markOpen)
		if start < 0 {
			b.WriteString(s.Muted.Render(snippet))
			break
		}
		if start > 0 {
			b.WriteString(s.Muted.Render(snippet[:start]))
		}
		rest := snippet[start+len(markOpen):]
		end := strings.Index(rest, markClose)
		if end < 0 {
			b.WriteString(s.Highlight.Render(rest))
			break
		}
		b.WriteString(s.Highlight.Render(rest[:end]))
		snippet = rest[end+len(markClose):]
	}
	return b.String()
}

// StripMarks removes highlight tags.
func StripMarks(snippet string) string {
	return markStripper.Replace(snippet)
}
