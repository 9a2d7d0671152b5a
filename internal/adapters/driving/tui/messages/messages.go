// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewDocuments lists stored documents.
	ViewDocuments
	// ViewDocContent shows the extracted text of one document.
	ViewDocContent
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the stored documents, newest first.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected asks for a document to be opened. From records the view
// to return to.
type DocumentSelected struct {
	ID   int64
	From ViewType
}

// DocumentContentLoaded carries a document with its extracted text.
type DocumentContentLoaded struct {
	Document *domain.Document
	Err      error
}

// DocumentDeleted signals a delete finished. Report lists secondary
// failures when the record itself was removed.
type DocumentDeleted struct {
	ID     int64
	Report domain.OperationReport
	Err    error
}

// StatsLoaded carries the repository summary shown on the menu.
type StatsLoaded struct {
	Stats *domain.Stats
	Err   error
}
