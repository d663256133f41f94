// Package watcher watches configuration paths and signals, debounced, when
// a config file changes.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/chainforge/internal/ctxlog"
)

// Watcher monitors config files and sends notifications on change.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	paths      []string
	extensions map[string]struct{}
	// files holds explicitly watched files; their directories are watched
	// but sibling files are ignored.
	files    map[string]struct{}
	dirs     map[string]struct{}
	debounce time.Duration
	onChange chan struct{}
	done     chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Paths       []string
	Extensions  []string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(paths []string, extensions []string) Config {
	return Config{
		Paths:       paths,
		Extensions:  extensions,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a new config watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	exts := make(map[string]struct{}, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		exts[e] = struct{}{}
	}

	return &Watcher{
		fsWatcher:  fsw,
		paths:      cfg.Paths,
		extensions: exts,
		files:      make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
		debounce:   cfg.DebounceDur,
		onChange:   make(chan struct{}, 1),
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching. Directories are watched recursively as they exist
// at start (TODO: pick up directories created later); a file path
// watches its directory and reacts to that file only. The returned channel
// receives a signal after changes settle for the debounce duration.
func (w *Watcher) Start(ctx context.Context) (<-chan struct{}, error) {
	for _, p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("watching %s: %w", p, err)
		}
		if !info.IsDir() {
			w.files[filepath.Clean(p)] = struct{}{}
			if err := w.addDir(filepath.Dir(p)); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != p && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.addDir(path)
		})
		if err != nil {
			return nil, err
		}
	}

	go w.loop(ctx)

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) addDir(dir string) error {
	dir = filepath.Clean(dir)
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.dirs[dir] = struct{}{}
	return nil
}

// loop processes file system events with debouncing.
func (w *Watcher) loop(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	var (
		timer   *time.Timer
		pending bool
	)
	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			logger.Debug("Config change detected.", "file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerC():
			if pending {
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error.", "error", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a rebuild.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Clean(event.Name)
	if _, ok := w.files[name]; ok {
		return true
	}
	if _, ok := w.extensions[filepath.Ext(name)]; !ok {
		return false
	}
	return w.dirIsWatchedRoot(filepath.Dir(name))
}

// dirIsWatchedRoot reports whether dir belongs to a directory path (as
// opposed to only being watched for an explicit file).
func (w *Watcher) dirIsWatchedRoot(dir string) bool {
	for _, p := range w.paths {
		p = filepath.Clean(p)
		if _, isFile := w.files[p]; isFile {
			continue
		}
		if dir == p || strings.HasPrefix(dir, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
