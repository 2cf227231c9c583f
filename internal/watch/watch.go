// Package watch reruns a callback when specification files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsecheck.watch")

type Config struct {
	DebounceWindow time.Duration
	MaxBatchSize   int
	// Patterns select the base names that trigger a callback, e.g. "*.mcf".
	// An empty list accepts every file.
	Patterns []string
}

// Watcher watches directories and reports changed files in batches.
type Watcher struct {
	config    Config
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
}

// New creates a watcher that calls onChange with the sorted paths of files
// written, created or renamed since the previous call.
func New(config Config, onChange func([]string)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		config:    config,
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(config.DebounceWindow, config.MaxBatchSize, onChange),
	}, nil
}

// Add watches path. For a file the containing directory is watched, since
// editors often save by replacing the file.
func (w *Watcher) Add(path string) error {
	dir := path
	if ext := filepath.Ext(path); ext != "" {
		dir = filepath.Dir(path)
	}
	log.Debugf("watching %s", dir)
	return w.fsWatcher.Add(dir)
}

// Run delivers events until ctx is done, then flushes pending paths and
// closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatcher.Close()
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			log.Debugf("%s: %s", event.Op, event.Name)
			w.debouncer.Add(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %s", err)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	if len(w.config.Patterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range w.config.Patterns {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
