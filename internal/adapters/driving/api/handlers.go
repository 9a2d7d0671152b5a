package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/logger"
)

// handleUpload handles POST /api/upload/.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload exceeds %d bytes", s.opts.MaxUploadBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "Expected multipart form data")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	req := domain.UploadRequest{
		Filename: header.Filename,
		Title:    r.FormValue("title"),
		Tags:     r.FormValue("tags"),
	}
	res, err := s.ports.Document.Upload(r.Context(), req, file)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := uploadResponse{documentResponse: toDocumentResponse(r, s.opts.MediaPrefix, &res.Document)}
	for _, step := range res.Report.Steps() {
		resp.Warnings = append(resp.Warnings, string(step))
	}
	if !res.Report.OK() {
		logger.FromContext(r.Context()).Warn("upload completed with failures",
			zap.Int64("id", res.Document.ID), zap.Error(res.Report.Err()))
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleListDocuments handles GET /api/documents/.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.ports.Document.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]documentResponse, len(docs))
	for i := range docs {
		items[i] = toDocumentResponse(r, s.opts.MediaPrefix, &docs[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// handleGetDocument handles GET /api/documents/{id}/.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	doc, err := s.ports.Document.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(r, s.opts.MediaPrefix, doc))
}

// handleDownload handles GET /api/documents/{id}/file.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rc, doc, err := s.ports.Document.OpenFile(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(path.Ext(doc.Filename())); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": doc.Filename(),
	}))
	if _, err := io.Copy(w, rc); err != nil {
		logger.FromContext(r.Context()).Warn("download interrupted", zap.Int64("id", id), zap.Error(err))
	}
}

// handleSearch handles GET /api/search/?q=.
// An optional limit parameter overrides the configured default.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, []searchResultResponse{})
		return
	}

	opts := domain.SearchOptions{Limit: s.opts.SearchLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = limit
	}

	results, err := s.ports.Search.Search(r.Context(), q, opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultResponse, len(results))
	for i := range results {
		items[i] = toSearchResultResponse(r, s.opts.MediaPrefix, &results[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// handleStats handles GET /api/stats/.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ports.Document.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// handleDelete handles DELETE /api/delete/{id}/.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := s.ports.Document.Delete(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !res.Report.OK() {
		logger.FromContext(r.Context()).Warn("delete completed with failures",
			zap.Int64("id", id), zap.Error(res.Report.Err()))
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}

// handleReindex handles POST /api/reindex/.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if s.ports.Index == nil || !s.ports.Index.Available() {
		s.handleDomainError(w, domain.ErrIndexUnavailable)
		return
	}
	n, err := s.ports.Index.Rebuild(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reindexResponse{Indexed: n})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Index:  s.ports.Index != nil && s.ports.Index.Available(),
	})
}

// parseID reads the {id} path parameter. Non-numeric ids are reported as
// not found, matching an integer route pattern.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}
