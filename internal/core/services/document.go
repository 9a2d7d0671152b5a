package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
	"github.com/custodia-labs/docshelf/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService runs the upload and delete pipelines across the record
// store, blob store, extractor, tagger and search index.
type DocumentService struct {
	records   driven.RecordStore
	blobs     driven.BlobStore
	extractor driven.TextExtractor
	tagger    driving.TaggingService
	index     driven.SearchIndex
}

// NewDocumentService creates a new document service.
// The index parameter is optional (can be nil); index steps are then
// reported as failed with domain.ErrIndexUnavailable.
func NewDocumentService(
	records driven.RecordStore,
	blobs driven.BlobStore,
	extractor driven.TextExtractor,
	tagger driving.TaggingService,
	index driven.SearchIndex,
) *DocumentService {
	return &DocumentService{
		records:   records,
		blobs:     blobs,
		extractor: extractor,
		tagger:    tagger,
		index:     index,
	}
}

// Upload stores the file and record, then enriches and indexes it.
// Errors are returned only when the blob or the initial record cannot be
// written. Every later failure is logged and recorded in the report.
func (s *DocumentService) Upload(
	ctx context.Context, req domain.UploadRequest, r io.Reader,
) (*domain.UploadResult, error) {
	logger.Section("Upload")

	filename := filepath.Base(strings.TrimSpace(req.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	logger.Debug("Filename: %q", filename)

	key, err := s.blobs.Put(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	doc := &domain.Document{
		Title:   title,
		FileKey: key,
		Tags:    strings.TrimSpace(req.Tags),
	}
	if err := s.records.Create(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Warn("Remove orphaned blob %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("create record: %w", err)
	}
	logger.Debug("Created record %d", doc.ID)

	result := &domain.UploadResult{}

	doc.Content = ""
	path, err := s.blobs.LocalPath(key)
	if err != nil {
		logger.Warn("Resolve file for document %d: %v", doc.ID, err)
		result.Report.Record(domain.StepResolveFile, err)
	} else {
		doc.Content = s.extractor.Extract(ctx, path)
	}
	logger.Debug("Extracted %d bytes", len(doc.Content))

	doc.FileType = domain.CategoryForFilename(key, doc.FileType)

	if !doc.HasTags() {
		doc.Tags = s.tagger.Tag(doc.Content)
		logger.Debug("Auto tags: %q", doc.Tags)
	}

	if err := s.records.Save(ctx, doc); err != nil {
		logger.Warn("Saving document %d after extraction failed: %v", doc.ID, err)
		result.Report.Record(domain.StepEnrich, err)
	}

	if err := s.upsert(ctx, *doc); err != nil {
		logger.Warn("Indexing failed for document %d: %v", doc.ID, err)
		result.Report.Record(domain.StepIndexUpsert, err)
	}

	result.Document = *doc
	return result, nil
}

func (s *DocumentService) upsert(ctx context.Context, doc domain.Document) error {
	if s.index == nil {
		return domain.ErrIndexUnavailable
	}
	return s.index.Upsert(ctx, domain.EntryFromDocument(doc))
}

// Delete removes the stored file, the record and the index entry.
// Only a missing record is an error; file and index failures are reported.
func (s *DocumentService) Delete(ctx context.Context, id int64) (*domain.DeleteResult, error) {
	logger.Section("Delete")
	logger.Debug("Document: %d", id)

	doc, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &domain.DeleteResult{ID: id}

	if doc.FileKey != "" {
		if err := s.blobs.Delete(ctx, doc.FileKey); err != nil {
			logger.Warn("Error deleting file for document %d: %v", id, err)
			result.Report.Record(domain.StepDeleteBlob, err)
		}
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return nil, err
	}

	var idxErr error
	if s.index == nil {
		idxErr = domain.ErrIndexUnavailable
	} else {
		idxErr = s.index.Delete(ctx, id)
	}
	if idxErr != nil {
		logger.Warn("Failed to remove document %d from search index: %v", id, idxErr)
		result.Report.Record(domain.StepIndexDelete, idxErr)
	}

	return result, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	return s.records.Get(ctx, id)
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.records.List(ctx)
}

// Stats summarises the repository.
func (s *DocumentService) Stats(ctx context.Context) (*domain.Stats, error) {
	total, err := s.records.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	stats := &domain.Stats{TotalDocuments: total, IndexedDocuments: -1}

	last, err := s.records.Latest(ctx)
	switch {
	case err == nil:
		stats.LastUploaded = last
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("latest document: %w", err)
	}

	if s.index != nil {
		if n, err := s.index.Count(); err == nil {
			stats.IndexedDocuments = int64(n)
		} else {
			logger.Warn("Index count failed: %v", err)
		}
	}
	return stats, nil
}

// OpenFile returns the stored file of a document. The caller closes the reader.
func (s *DocumentService) OpenFile(ctx context.Context, id int64) (io.ReadCloser, *domain.Document, error) {
	doc, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, err
	}
	return rc, doc, nil
}
