// Package keymap holds the key bindings shared by the TUI views.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the set of bindings. Enter and esc are bound more than once
// so each view can show the meaning it gives them.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	// Navigation.
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Cancel key.Binding

	// Search and results.
	Search    key.Binding
	NewSearch key.Binding
	Open      key.Binding

	// Documents list.
	Delete key.Binding
	Reload key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns vim-style bindings alongside the arrow keys.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      bind("q", "quit", "q", "ctrl+c"),
		Help:      bind("?", "help", "?"),
		Up:        bind("↑/k", "up", "up", "k"),
		Down:      bind("↓/j", "down", "down", "j"),
		Select:    bind("enter", "select", "enter"),
		Back:      bind("esc", "back", "esc"),
		Cancel:    bind("esc", "cancel", "esc"),
		Search:    bind("enter", "search", "enter"),
		NewSearch: bind("n", "new search", "n"),
		Open:      bind("enter", "open", "enter"),
		Delete:    bind("d", "delete", "d"),
		Reload:    bind("r", "reload", "r"),
	}
}

// ShortHelp is shown while typing a query.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp is shown while browsing search results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Open, k.Back}
}

// DocumentsHelp is shown on the documents list.
func (k *KeyMap) DocumentsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Reload, k.Back}
}

// FullHelp groups every binding for the help screen.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.NewSearch, k.Open},
		{k.Delete, k.Reload},
		{k.Back, k.Cancel},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of binding's keys. Unlike
// key.Matches it ignores whether the binding is enabled.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
