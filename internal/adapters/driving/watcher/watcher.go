// Package watcher imports files dropped into an inbox directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
	"github.com/custodia-labs/docshelf/internal/logger"
)

const (
	// ImportedDir is the subdirectory imported files are moved into.
	ImportedDir = ".imported"

	// DefaultRate is the import rate when Options.RatePerSec is zero.
	DefaultRate = 2.0

	// DefaultSettle is how long a file must be quiet before it is imported.
	DefaultSettle = 500 * time.Millisecond
)

// ErrNotDirectory is returned when the inbox path is not a directory.
var ErrNotDirectory = errors.New("watch path is not a directory")

// Options configures a Watcher.
type Options struct {
	// RatePerSec caps uploads per second. Zero means DefaultRate.
	RatePerSec float64

	// Settle is the quiet period after the last write event. Zero means
	// DefaultSettle.
	Settle time.Duration
}

// Watcher uploads regular files that appear in a directory, then moves them
// to ImportedDir. Hidden files and subdirectories are ignored.
type Watcher struct {
	dir     string
	docs    driving.DocumentService
	limiter *rate.Limiter
	settle  time.Duration
	log     *zap.Logger
}

// New creates a watcher for dir.
func New(dir string, docs driving.DocumentService, opts Options) (*Watcher, error) {
	if docs == nil {
		return nil, errors.New("watcher: document service is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = DefaultRate
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}

	return &Watcher{
		dir:     filepath.Clean(dir),
		docs:    docs,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		settle:  opts.Settle,
		log:     logger.Zap().Named("watcher").With(zap.String("dir", dir)),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run imports files already in the directory, then watches for new ones
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching for new files")

	if _, err := w.ImportExisting(ctx); err != nil {
		return err
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.accepts(ev) {
				pending[ev.Name] = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				if err := w.importPath(ctx, path); err != nil && ctx.Err() != nil {
					return nil
				}
			}
		}
	}
}

// accepts reports whether ev may carry a new file to import.
func (w *Watcher) accepts(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return filepath.Dir(ev.Name) == w.dir && !isHidden(filepath.Base(ev.Name))
}

// ImportExisting imports every eligible file currently in the directory and
// returns how many were uploaded.
func (w *Watcher) ImportExisting(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", w.dir, err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || isHidden(e.Name()) {
			continue
		}
		if err := w.importPath(ctx, filepath.Join(w.dir, e.Name())); err != nil {
			if ctx.Err() != nil {
				return n, nil
			}
			continue
		}
		n++
	}
	return n, nil
}

// importPath waits for the rate limiter, then imports path if it is still a
// regular file.
func (w *Watcher) importPath(ctx context.Context, path string) error {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("skip %s: not a regular file", path)
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = w.ImportFile(ctx, path)
	return err
}

// ImportFile uploads path and moves it into ImportedDir. A file whose upload
// fails stays in place. Secondary failures are logged and the file is still
// moved, since its record exists.
func (w *Watcher) ImportFile(ctx context.Context, path string) (*domain.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	name := filepath.Base(path)
	res, err := w.docs.Upload(ctx, domain.UploadRequest{Filename: name}, f)
	_ = f.Close()
	if err != nil {
		w.log.Warn("import failed", zap.String("file", name), zap.Error(err))
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	fields := []zap.Field{zap.String("file", name), zap.Int64("id", res.Document.ID)}
	if !res.Report.OK() {
		w.log.Warn("imported with failures", append(fields, zap.Stringer("report", res.Report))...)
	} else {
		w.log.Info("imported", fields...)
	}

	if err := w.moveImported(path); err != nil {
		w.log.Warn("move imported file", zap.String("file", name), zap.Error(err))
	}
	return res, nil
}

// moveImported renames path into ImportedDir, suffixing the name when a file
// of that name was imported before.
func (w *Watcher) moveImported(path string) error {
	dest := filepath.Join(w.dir, ImportedDir)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	target := filepath.Join(dest, name)
	for i := 1; fileExists(target); i++ {
		target = filepath.Join(dest, stem+"-"+strconv.Itoa(i)+ext)
	}
	return os.Rename(path, target)
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// isHidden reports whether name is a dotfile. "." and ".." are not.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
