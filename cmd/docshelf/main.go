// Command docshelf is a document repository with full-text search.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docshelf/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docshelf/internal/adapters/driven/search/bleve"
	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docshelf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docshelf/internal/adapters/driving/cli"
	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
	"github.com/custodia-labs/docshelf/internal/core/services"
	"github.com/custodia-labs/docshelf/internal/logger"
	"github.com/custodia-labs/docshelf/internal/metrics"
	"github.com/custodia-labs/docshelf/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	dotenvFile = ".env"
	indexDir   = "index"
	mediaDir   = "media"
)

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap wires the stores, index and services for one command run.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	if err := configStore.LoadEnv(dotenvFile); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	settingsService := services.NewSettingsService(configStore, opts.ConfigDir)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	if opts.LogFormat == "" {
		if err := logger.SetFormat(settings.LogFormat); err != nil {
			return nil, nil, err
		}
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Cleanup: %v", err)
			}
		}
	}

	st, err := openStorage(settings, opts.Ephemeral, &closers)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var rules []domain.KeywordRule
	if settings.Tagging.RulesFile != "" {
		rules, err = file.LoadKeywordRules(settings.Tagging.RulesFile)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("load tagging rules: %w", err)
		}
	}

	documentService := services.NewDocumentService(
		st.records, st.blobs, normalisers.Default(), services.NewTagger(rules), st.index)
	searchService := services.NewSearchService(st.records, st.index, services.SearchOptions{
		DefaultLimit:         settings.Search.DefaultLimit,
		FallbackLimit:        settings.Search.FallbackLimit,
		FallbackSnippetChars: settings.Search.FallbackSnippetChars,
	})

	return &cli.Services{
		Search:   metrics.InstrumentSearch(searchService),
		Document: metrics.InstrumentDocuments(documentService),
		Index:    services.NewIndexService(st.records, st.index),
		Settings: settingsService,
		Media:    st.media,
	}, cleanup, nil
}

type storage struct {
	records driven.RecordStore
	blobs   driven.BlobStore
	index   driven.SearchIndex
	media   http.Handler
}

// openStorage opens the record store, blob store and search index.
// Ephemeral runs keep records in memory, files in a temporary directory
// and have no index. A persistent index that fails to open is logged and
// left nil so uploads still succeed and fall back to substring search.
func openStorage(settings *domain.Settings, ephemeral bool, closers *[]func() error) (*storage, error) {
	if ephemeral {
		tmp, err := os.MkdirTemp("", "docshelf-")
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() error { return os.RemoveAll(tmp) })
		blobs, err := blob.NewStore(tmp)
		if err != nil {
			return nil, err
		}
		logger.Info("Ephemeral mode: records in memory, files in %s, no search index", tmp)
		return &storage{
			records: memory.NewRecordStore(),
			blobs:   blobs,
			media:   http.FileServer(http.Dir(blobs.Root())),
		}, nil
	}

	if err := os.MkdirAll(settings.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	*closers = append(*closers, db.Close)

	blobs, err := blob.NewStore(filepath.Join(settings.DataDir, mediaDir))
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	st := &storage{
		records: db.RecordStore(),
		blobs:   blobs,
		media:   http.FileServer(http.Dir(blobs.Root())),
	}

	idx, err := bleve.Open(filepath.Join(settings.DataDir, indexDir), bleve.Options{
		SnippetChars: settings.Search.SnippetChars,
	})
	switch {
	case err == nil:
		*closers = append(*closers, idx.Close)
		st.index = metrics.InstrumentIndex(idx)
	case errors.Is(err, domain.ErrIndexUnavailable):
		logger.Warn("Search index unavailable, using substring search only: %v", err)
	default:
		return nil, err
	}
	return st, nil
}
