// Package watch invalidates cached corpus state when files in the
// documents directory change, so long-running processes pick up edits
// on the next load without an explicit reload.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/docentlabs/docent-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last relevant
// event before invalidating. Copies and office saves produce bursts of
// events for one logical change.
const DefaultDebounce = 500 * time.Millisecond

// Invalidator drops cached corpus state for a location.
type Invalidator interface {
	Invalidate(location string)
}

// Config holds watcher configuration.
type Config struct {
	// Dir is the documents directory to watch.
	Dir string

	// Extensions limits events to these file extensions, lower-case
	// with leading dot. Empty means every file counts.
	Extensions []string

	// ExcludeGlobs are file name patterns to ignore, e.g. "~$*" for
	// office lock files.
	ExcludeGlobs []string

	// Debounce is the quiet period before invalidating. Zero selects
	// DefaultDebounce.
	Debounce time.Duration
}

// Watcher observes one documents directory and invalidates the corpus
// cache after changes settle.
type Watcher struct {
	fs        *fsnotify.Watcher
	inv       Invalidator
	dir       string
	exts      []string
	excludes  []string
	debounce  time.Duration
	closeOnce sync.Once
	closeErr  error
}

// New creates a watcher over cfg.Dir. The directory must exist.
func New(cfg Config, inv Invalidator) (*Watcher, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory %s: not a directory", cfg.Dir)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", cfg.Dir, err)
	}

	exts := make([]string, len(cfg.Extensions))
	for i, ext := range cfg.Extensions {
		exts[i] = strings.ToLower(ext)
	}

	return &Watcher{
		fs:       fsw,
		inv:      inv,
		dir:      cfg.Dir,
		exts:     exts,
		excludes: cfg.ExcludeGlobs,
		debounce: cfg.Debounce,
	}, nil
}

// Run processes filesystem events until the context is cancelled or the
// watcher is closed. Cancellation is a clean shutdown, not an error.
func (w *Watcher) Run(ctx context.Context) error {
	logger.Debug("Watching %s for document changes", w.dir)

	// The timer starts stopped; a relevant event arms it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Document change: %s (%s)", filepath.Base(event.Name), event.Op)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			logger.Info("Documents changed in %s, cached corpus invalidated", w.dir)
			w.inv.Invalidate(w.dir)
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fs.Close()
	})
	return w.closeErr
}

// relevant reports whether an event concerns a document the loader
// would consider. Chmod-only events never do.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	return w.supported(name) && !w.excluded(name)
}

func (w *Watcher) supported(name string) bool {
	if len(w.exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range w.exts {
		if ext == supported {
			return true
		}
	}
	return false
}

func (w *Watcher) excluded(name string) bool {
	for _, pattern := range w.excludes {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
