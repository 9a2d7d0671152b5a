package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/index/scorch"
	blevesearch "github.com/blevesearch/bleve/v2/search"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

const (
	currentFile      = "CURRENT"
	generationPrefix = "gen-"
	generationSuffix = ".bleve"

	// DefaultBatchSize is the number of entries committed per rebuild batch.
	DefaultBatchSize = 500
)

// Options configures an Index.
type Options struct {
	// SnippetChars bounds highlighted fragments. Zero means unlimited.
	SnippetChars int

	// BatchSize is the rebuild batch size. Zero means DefaultBatchSize.
	BatchSize int
}

// Index is a bleve search index with atomic rebuilds.
type Index struct {
	root  string
	opts  Options
	style string
	parse parseFunc

	// writeMu serialises writers: upserts, deletes, rebuilds and close.
	writeMu sync.Mutex
	active  bleve.Index
	genPath string
	alias   bleve.IndexAlias
	closed  bool
	stateMu sync.RWMutex
}

// Open opens the index under root, creating an empty one when none exists.
func Open(root string, opts Options) (*Index, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create index dir: %v", domain.ErrIndexUnavailable, err)
	}

	style, err := highlightStyle(opts.SnippetChars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	genPath, err := currentGeneration(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	idx, err := openOrCreate(genPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	if err := writeCurrent(root, filepath.Base(genPath)); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	removeStaleGenerations(root, filepath.Base(genPath))

	return &Index{
		root:    root,
		opts:    opts,
		style:   style,
		parse:   parseQueryString,
		active:  idx,
		genPath: genPath,
		alias:   bleve.NewIndexAlias(idx),
	}, nil
}

// currentGeneration returns the path named by CURRENT, or a fresh
// generation path when CURRENT is absent.
func currentGeneration(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, currentFile))
	if errors.Is(err, os.ErrNotExist) {
		return newGenerationPath(root), nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", currentFile, err)
	}
	name := strings.TrimSpace(string(data))
	if !strings.HasPrefix(name, generationPrefix) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("corrupt %s: %q", currentFile, name)
	}
	return filepath.Join(root, name), nil
}

func newGenerationPath(root string) string {
	return filepath.Join(root, fmt.Sprintf("%s%d%s", generationPrefix, time.Now().UnixNano(), generationSuffix))
}

func openOrCreate(path string) (bleve.Index, error) {
	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return create(path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Opened existing index at %s", path)
	return idx, nil
}

func create(path string) (bleve.Index, error) {
	m, err := buildIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("build mapping: %w", err)
	}
	idx, err := bleve.NewUsing(path, m, scorch.Name, scorch.Name, indexConfig())
	if err != nil {
		return nil, err
	}
	logger.Debug("Created new index at %s", path)
	return idx, nil
}

// writeCurrent atomically points CURRENT at generation name.
func writeCurrent(root, name string) error {
	tmp, err := os.CreateTemp(root, currentFile+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(name + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(root, currentFile))
}

// removeStaleGenerations deletes generation dirs left by interrupted rebuilds.
func removeStaleGenerations(root, keep string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == keep || !strings.HasPrefix(name, generationPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
			logger.Warn("Remove stale index generation %s: %v", name, err)
		}
	}
}

func (x *Index) isClosed() bool {
	x.stateMu.RLock()
	defer x.stateMu.RUnlock()
	return x.closed
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func toIndexDoc(e domain.IndexEntry) map[string]interface{} {
	return map[string]interface{}{
		fieldID:      docID(e.ID),
		fieldTitle:   e.Title,
		fieldContent: e.Content,
		fieldTags:    domain.ParseTags(e.Tags),
	}
}

// Upsert adds or replaces the entry with the same ID.
func (x *Index) Upsert(_ context.Context, e domain.IndexEntry) error {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	if x.isClosed() {
		return domain.ErrIndexClosed
	}
	if err := x.active.Index(docID(e.ID), toIndexDoc(e)); err != nil {
		return fmt.Errorf("index document %d: %w", e.ID, err)
	}
	return nil
}

// Delete removes the entry with id.
func (x *Index) Delete(_ context.Context, id int64) error {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	if x.isClosed() {
		return domain.ErrIndexClosed
	}
	if err := x.active.Delete(docID(id)); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	return nil
}

// Rebuild builds a new generation from entries and swaps it in.
// On failure the live generation is untouched.
func (x *Index) Rebuild(ctx context.Context, entries []domain.IndexEntry) error {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	if x.isClosed() {
		return domain.ErrIndexClosed
	}

	genPath := newGenerationPath(x.root)
	fresh, err := create(genPath)
	if err != nil {
		return fmt.Errorf("create generation: %w", err)
	}
	discard := func() {
		_ = fresh.Close()
		if err := os.RemoveAll(genPath); err != nil {
			logger.Warn("Remove failed generation %s: %v", genPath, err)
		}
	}

	batch := fresh.NewBatch()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			discard()
			return err
		}
		if err := batch.Index(docID(e.ID), toIndexDoc(e)); err != nil {
			discard()
			return fmt.Errorf("batch document %d: %w", e.ID, err)
		}
		if batch.Size() >= x.opts.BatchSize {
			if err := fresh.Batch(batch); err != nil {
				discard()
				return fmt.Errorf("commit batch: %w", err)
			}
			batch.Reset()
		}
	}
	if batch.Size() > 0 {
		if err := fresh.Batch(batch); err != nil {
			discard()
			return fmt.Errorf("commit batch: %w", err)
		}
	}

	if err := writeCurrent(x.root, filepath.Base(genPath)); err != nil {
		discard()
		return fmt.Errorf("write %s: %w", currentFile, err)
	}

	old, oldPath := x.active, x.genPath
	x.alias.Swap([]bleve.Index{fresh}, []bleve.Index{old})
	x.active, x.genPath = fresh, genPath

	if err := old.Close(); err != nil {
		logger.Warn("Close previous index generation: %v", err)
	}
	if err := os.RemoveAll(oldPath); err != nil {
		logger.Warn("Remove previous index generation %s: %v", oldPath, err)
	}
	logger.Debug("Swapped in index generation %s with %d entries", filepath.Base(genPath), len(entries))
	return nil
}

// Search runs q against title, content and tags.
func (x *Index) Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error) {
	if x.isClosed() {
		return nil, domain.ErrIndexClosed
	}
	if strings.TrimSpace(q) == "" {
		return []domain.SearchHit{}, nil
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	parsed, err := buildQuery(q, x.parse)
	if err != nil {
		return []domain.SearchHit{}, nil
	}

	req := bleve.NewSearchRequestOptions(parsed, limit, 0, false)
	req.Fields = []string{fieldID, fieldTitle, fieldTags}
	// No explicit highlight fields: only fields with matches get fragments,
	// so a title-only hit carries an empty content snippet.
	req.Highlight = bleve.NewHighlightWithStyle(x.style)

	res, err := x.alias.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit, ok := convertHit(h)
		if !ok {
			logger.Warn("Skipping index hit with malformed id %q", h.ID)
			continue
		}
		hits = append(hits, hit)
	}
	logger.Debug("Index search for %q returned %d hits", q, len(hits))
	return hits, nil
}

func convertHit(h *blevesearch.DocumentMatch) (domain.SearchHit, bool) {
	id, err := strconv.ParseInt(h.ID, 10, 64)
	if err != nil {
		return domain.SearchHit{}, false
	}
	title, _ := h.Fields[fieldTitle].(string)
	return domain.SearchHit{
		ID:      id,
		Title:   title,
		Snippet: strings.Join(h.Fragments[fieldContent], " ... "),
		Tags:    domain.JoinTags(storedStrings(h.Fields[fieldTags])),
		Score:   h.Score,
	}, true
}

// storedStrings normalises a stored field that may hold one or many values.
func storedStrings(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Count returns the number of indexed entries.
func (x *Index) Count() (uint64, error) {
	if x.isClosed() {
		return 0, domain.ErrIndexClosed
	}
	return x.alias.DocCount()
}

// Path returns the live generation directory.
func (x *Index) Path() string {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	return x.genPath
}

// Close releases the index. Later calls return domain.ErrIndexClosed.
func (x *Index) Close() error {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()

	x.stateMu.Lock()
	if x.closed {
		x.stateMu.Unlock()
		return nil
	}
	x.closed = true
	x.stateMu.Unlock()

	_ = x.alias.Close()
	return x.active.Close()
}
