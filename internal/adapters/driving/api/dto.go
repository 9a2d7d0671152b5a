package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

// documentResponse is the JSON shape of a document record.
type documentResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	File      string    `json:"file"`
	Filename  string    `json:"filename"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// uploadResponse is a created document plus the steps that failed after
// the record was stored.
type uploadResponse struct {
	documentResponse
	Warnings []string `json:"warnings,omitempty"`
}

type searchResultResponse struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	FileURL  string  `json:"file_url"`
	Filename string  `json:"filename"`
	Tags     string  `json:"tags"`
	Score    float64 `json:"score"`
	Source   string  `json:"source"`
}

type lastUploadedResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Filename  string    `json:"filename"`
}

type statsResponse struct {
	TotalDocuments   int                   `json:"total_documents"`
	IndexedDocuments *int64                `json:"indexed_documents"`
	LastUploaded     *lastUploadedResponse `json:"last_uploaded"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type reindexResponse struct {
	Indexed int `json:"indexed"`
}

type healthResponse struct {
	Status string `json:"status"`
	Index  bool   `json:"index"`
}

// mediaURL returns the absolute URL of a blob key under mediaPrefix.
func mediaURL(r *http.Request, mediaPrefix, key string) string {
	if key == "" {
		return ""
	}
	u := url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   mediaPrefix + key,
	}
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func toDocumentResponse(r *http.Request, mediaPrefix string, d *domain.Document) documentResponse {
	return documentResponse{
		ID:        d.ID,
		Title:     d.Title,
		File:      d.FileKey,
		Filename:  d.Filename(),
		FileURL:   mediaURL(r, mediaPrefix, d.FileKey),
		FileType:  d.FileType.String(),
		Content:   d.Content,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
	}
}

func toSearchResultResponse(r *http.Request, mediaPrefix string, res *domain.SearchResult) searchResultResponse {
	return searchResultResponse{
		ID:       res.ID,
		Title:    res.Title,
		Snippet:  res.Snippet,
		FileURL:  mediaURL(r, mediaPrefix, res.FileKey),
		Filename: res.Filename,
		Tags:     res.Tags,
		Score:    res.Score,
		Source:   string(res.Source),
	}
}

func toStatsResponse(s *domain.Stats) statsResponse {
	resp := statsResponse{TotalDocuments: s.TotalDocuments}
	if s.IndexedDocuments >= 0 {
		n := s.IndexedDocuments
		resp.IndexedDocuments = &n
	}
	if s.LastUploaded != nil {
		resp.LastUploaded = &lastUploadedResponse{
			ID:        s.LastUploaded.ID,
			Title:     s.LastUploaded.Title,
			CreatedAt: s.LastUploaded.CreatedAt,
			Filename:  s.LastUploaded.Filename(),
		}
	}
	return resp
}
