package mcp

import (
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Document reads stored documents. Optional; without it only the
	// search tool is registered.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
