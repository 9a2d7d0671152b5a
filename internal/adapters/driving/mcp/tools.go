package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 30)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID int64   `json:"document_id"`
	Title      string  `json:"title"`
	Filename   string  `json:"filename"`
	Tags       string  `json:"tags,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	Score      float64 `json:"score"`
	Source     string  `json:"source"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of documents to return, newest first (default all)"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentSummary `json:"documents"`
	Count     int               `json:"count"`
	Total     int               `json:"total"`
}

// DocumentSummary describes a document without its content.
type DocumentSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Filename  string `json:"filename"`
	FileType  string `json:"file_type"`
	Tags      string `json:"tags,omitempty"`
	CreatedAt string `json:"created_at"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID int64 `json:"id" jsonschema:"the document id"`
}

// GetDocumentOutput is a document with its extracted text.
type GetDocumentOutput struct {
	DocumentSummary
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Full-text search over document titles, content and tags",
	}, s.handleSearch)

	if s.ports.Document == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List stored documents, newest first",
	}, s.handleListDocuments)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a stored document including its extracted text",
	}, s.handleGetDocument)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	opts := domain.SearchOptions{Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].ID,
			Title:      results[i].Title,
			Filename:   results[i].Filename,
			Tags:       results[i].Tags,
			Snippet:    results[i].Snippet,
			Score:      results[i].Score,
			Source:     string(results[i].Source),
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	total := len(docs)
	if input.Limit > 0 && len(docs) > input.Limit {
		docs = docs[:input.Limit]
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentSummary, len(docs)),
		Count:     len(docs),
		Total:     total,
	}
	for i := range docs {
		output.Documents[i] = summarize(&docs[i])
	}
	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	if input.ID <= 0 {
		return nil, GetDocumentOutput{}, errors.New("id must be a positive integer")
	}

	doc, err := s.ports.Document.Get(ctx, input.ID)
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}

	return nil, GetDocumentOutput{
		DocumentSummary: summarize(doc),
		Content:         doc.Content,
	}, nil
}

func summarize(d *domain.Document) DocumentSummary {
	return DocumentSummary{
		ID:        d.ID,
		Title:     d.Title,
		Filename:  d.Filename(),
		FileType:  d.FileType.String(),
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
