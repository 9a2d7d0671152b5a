// Package status renders the one-line status bar at the bottom of each view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docshelf/internal/adapters/driving/tui/styles"
)

// State selects the left-hand text and the key hints.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateHelp      State = "help"
	StateResults   State = "results"
	StateDocuments State = "documents"
)

const defaultWidth = 80

// Bar shows what the view is doing on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int

	state    State
	message  string
	count    int
	fallback bool
}

// NewBar creates a bar in StateReady. Nil arguments select the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: defaultWidth, state: StateReady}
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left, right := s.status(), s.hints()
	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateDocuments:
		return s.styles.Normal.Render(fmt.Sprintf("%d documents", s.count))
	}

	if s.count == 0 {
		return s.styles.Muted.Render("Ready")
	}
	text := fmt.Sprintf("%d results", s.count)
	if s.fallback {
		text += " (substring match)"
	}
	return s.styles.Normal.Render(text)
}

func (s *Bar) hints() string {
	bindings := s.keymap.ShortHelp()
	switch {
	case s.state == StateDocuments:
		bindings = s.keymap.DocumentsHelp()
	case s.state == StateResults && s.count > 0:
		bindings = s.keymap.ResultsHelp()
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = hint(b)
	}
	return s.styles.Muted.Render(strings.Join(parts, " | "))
}

func hint(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}

func (s *Bar) SetState(state State) { s.state = state }
func (s *Bar) State() State { return s.state }
func (s *Bar) SetMessage(message string) { s.message = message }
func (s *Bar) Message() string { return s.message }

// SetResultCount sets the number shown for results or documents.
func (s *Bar) SetResultCount(n int) { s.count = n }
func (s *Bar) ResultCount() int { return s.count }

// SetFallback marks the results as substring matches.
func (s *Bar) SetFallback(fallback bool) { s.fallback = fallback }
func (s *Bar) Fallback() bool { return s.fallback }

func (s *Bar) SetWidth(width int) { s.width = width }
func (s *Bar) Width() int { return s.width }

// Clear returns the bar to StateReady with no message or count.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
	s.fallback = false
}
