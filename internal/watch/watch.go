// Package watch rebuilds the site when content files change.
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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultPattern selects the content files that affect the export.
const DefaultPattern = "**/*.{toml,bib,md}"

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 200 * time.Millisecond

// RebuildFunc is called with the slash-separated names of changed files,
// relative to the watched directory and sorted.
type RebuildFunc func(ctx context.Context, changed []string) error

// Watcher watches a content directory recursively.
type Watcher struct {
	Dir      string
	Pattern  string
	Debounce time.Duration
	Logger   *slog.Logger
}

// New creates a watcher for dir with the default pattern and debounce.
func New(dir string, logger *slog.Logger) *Watcher {
	return &Watcher{Dir: dir, Pattern: DefaultPattern, Debounce: DefaultDebounce, Logger: logger}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

// Matches reports whether the slash-separated name is a watched content file.
func (w *Watcher) Matches(name string) bool {
	pattern := w.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// Run watches until ctx is cancelled, calling rebuild once per settled burst
// of matching changes. Rebuild errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.Dir); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger().Info("watching content", "dir", w.Dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			name, ok := w.handle(watcher, event)
			if !ok {
				continue
			}
			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			clear(pending)

			w.logger().Info("content changed", "files", changed)
			if err := rebuild(ctx, changed); err != nil {
				w.logger().Error("rebuild failed", "error", err)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger().Error("fsnotify error", "error", werr)
		}
	}
}

// handle filters one event, starting to watch newly created directories.
// Returns the changed file name when the event should trigger a rebuild.
func (w *Watcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	w.logger().Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Op == fsnotify.Chmod {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger().Warn("watching new directory", "dir", event.Name, "error", err)
			}
			return "", false
		}
	}

	rel, err := filepath.Rel(w.Dir, event.Name)
	if err != nil {
		return "", false
	}
	name := filepath.ToSlash(rel)
	if !w.Matches(name) {
		return "", false
	}
	return name, true
}

// addRecursive watches root and every non-hidden directory below it.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
