// Package watch re-runs a callback when artifact or matrix files under a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ariel-frischer/uxgate/internal/logging"
)

// DefaultExtensions are the file types that trigger a re-run.
var DefaultExtensions = []string{".md", ".markdown", ".csv"}

// Watcher debounces filesystem events below a root directory.
type Watcher struct {
	root       string
	debounce   time.Duration
	fsw        *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool
}

// New creates a watcher for root. Events are coalesced until debounce has passed
// without a new relevant change.
func New(root string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	extensions := make(map[string]bool, len(DefaultExtensions))
	for _, ext := range DefaultExtensions {
		extensions[ext] = true
	}

	w := &Watcher{
		root:       root,
		debounce:   debounce,
		fsw:        fsw,
		logger:     logger,
		extensions: extensions,
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks until ctx is done, calling onChange with the sorted changed paths
// after each quiet period. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				pending[event.Name] = struct{}{}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = map[string]struct{}{}

			w.logger.Debug("re-running after changes", "files", len(changed))
			onChange(ctx, changed)
		}
	}
}

// handleEvent reports whether event touches a watched file type.
// New directories are added to the watch list as a side effect.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	if isHidden(filepath.Base(event.Name)) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return false
		}
	}

	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return false
	}
	w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
	return true
}

// addRecursive watches root and every non-hidden directory below it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
