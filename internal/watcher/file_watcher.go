// Package watcher reports debounced changes to Python sources and
// templates so `genny gen --watch` can regenerate documentation.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mvp-joe/genny/internal/logger"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher monitors files and directories for changes with debouncing.
type FileWatcher interface {
	// Start begins watching, calling callback with each debounced batch of
	// changed files, sorted.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}

// Options configures NewFileWatcher.
type Options struct {
	// Paths are files or directories. Files are watched individually;
	// directories recursively, filtered by Extensions.
	Paths []string
	// Extensions monitored inside watched directories (e.g. ".py", ".tmpl").
	Extensions []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
}

// fileWatcher implements FileWatcher interface.
type fileWatcher struct {
	watcher       *fsnotify.Watcher
	files         map[string]bool // Individually watched files
	roots         []string        // Recursively watched directories
	extensions    map[string]bool // Extensions monitored under roots
	debounceTime  time.Duration   // Quiet period before firing callback
	callback      func(files []string)
	ctx           context.Context
	cancel        context.CancelFunc
	accumulated   map[string]bool // Accumulated file changes
	accumulatedMu sync.Mutex      // Protects accumulated map
	debounceTimer *time.Timer     // Current debounce timer
	timerMu       sync.Mutex      // Protects debounce timer
	stopOnce      sync.Once       // Ensures Stop() is idempotent
	doneCh        chan struct{}   // Signals watch goroutine has finished
}

// NewFileWatcher creates a watcher over opts.Paths. Every path must exist.
func NewFileWatcher(opts Options) (FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		extMap[ext] = true
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &fileWatcher{
		watcher:      watcher,
		files:        make(map[string]bool),
		extensions:   extMap,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	for _, path := range opts.Paths {
		if err := fw.addPath(filepath.Clean(path)); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return fw, nil
}

// addPath registers a file (through its parent directory, so editors that
// replace files on save are still seen) or a directory tree.
func (fw *fileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		fw.roots = append(fw.roots, path)
		return fw.addDirectoriesRecursively(path)
	}

	fw.files[path] = true
	return fw.watcher.Add(filepath.Dir(path))
}

// Start begins watching for file changes.
func (fw *fileWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	fw.callback = callback
	fw.ctx, fw.cancel = context.WithCancel(ctx)

	go fw.watch()
	return nil
}

// Stop stops the file watcher.
func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()

			// Wait for goroutine to finish (only if Start() was called)
			<-fw.doneCh
		} else {
			close(fw.doneCh)
		}

		err = fw.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (fw *fileWatcher) watch() {
	defer close(fw.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-fw.ctx.Done():
			fw.stopDebounceTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// New directories under a root join the watch
			if event.Op&fsnotify.Create != 0 && fw.underRoot(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addDirectoriesRecursively(event.Name); err != nil {
						logger.Warnw("failed to watch new directory", logger.FieldPath, event.Name, logger.FieldError, err)
					}
				}
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.accumulatedMu.Lock()
			fw.accumulated[event.Name] = true
			fw.accumulatedMu.Unlock()

			fw.resetDebounceTimer(fireCh)

		case <-fireCh:
			fw.handleDebounceExpired()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("file watcher error", logger.FieldError, err)
		}
	}
}

// handleDebounceExpired fires the callback with the accumulated batch.
func (fw *fileWatcher) handleDebounceExpired() {
	fw.accumulatedMu.Lock()
	if len(fw.accumulated) == 0 {
		fw.accumulatedMu.Unlock()
		return
	}

	files := make([]string, 0, len(fw.accumulated))
	for file := range fw.accumulated {
		files = append(files, file)
	}
	fw.accumulated = make(map[string]bool)
	fw.accumulatedMu.Unlock()

	sort.Strings(files)
	if fw.callback != nil {
		fw.callback(files)
	}
}

// resetDebounceTimer resets the debounce timer, properly stopping the old one.
func (fw *fileWatcher) resetDebounceTimer(fireCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

// stopDebounceTimer stops the debounce timer if it exists.
func (fw *fileWatcher) stopDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
		fw.debounceTimer = nil
	}
}

// shouldProcessEvent keeps writes, creates, removes and renames of watched
// files, and of files with a monitored extension under a root.
func (fw *fileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if fw.files[event.Name] {
		return true
	}

	return fw.extensions[filepath.Ext(event.Name)] && fw.underRoot(event.Name)
}

func (fw *fileWatcher) underRoot(path string) bool {
	for _, root := range fw.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (fw *fileWatcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			logger.Warnw("error accessing path", logger.FieldPath, path, logger.FieldError, err)
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		// Hidden directories (.git, .venv) are never documented
		if path != rootPath && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			logger.Warnw("failed to watch directory", logger.FieldPath, path, logger.FieldError, err)
		}
		return nil
	})
}
