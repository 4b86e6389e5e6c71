// Package watcher drives watch mode: it watches a directory tree and invokes
// a callback once each burst of file changes has settled.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentsync/agentsync/pkg/logger"
)

var log = logger.New("watcher:watcher")

// DefaultDebounce is the quiet period after the last event before the
// callback fires. Editors emit several events per save; one regeneration
// should cover the whole burst.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a directory tree and reports settled change bursts.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func()
}

// Option adjusts a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the settle period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher over the tree rooted at root. onChange runs on the
// watcher's goroutine after each settled burst.
func New(root string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the tree until ctx is done. The root directory must exist when
// Run starts; directories created underneath it later are picked up. Context
// cancellation is the normal exit and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}

	// The timer starts drained; events arm it, expiry fires the callback.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if log.Enabled() {
				log.Printf("Event: %s %s", event.Op, event.Name)
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						log.Printf("Failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)
		case <-timer.C:
			w.onChange()
		}
	}
}

// addTree registers root and every directory below it with the watcher.
func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		if log.Enabled() {
			log.Printf("Watching: %s", path)
		}
		return nil
	})
}
