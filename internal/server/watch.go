package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/go-spring-projects/website/internal/log"
	"github.com/go-spring-projects/website/internal/walker"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds the site when sources or the config file change.
// fsnotify watches are not recursive, so every directory under the
// source tree is added, including ones created later.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rebuild  func() error
	debounce time.Duration
	logger   zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches srcDir recursively, plus any extra files such as the
// config file. rebuild runs once per burst of changes.
func NewWatcher(srcDir string, extra []string, rebuild func() error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   log.WithComponent("watch"),
	}

	if err := w.addTree(srcDir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	for _, path := range extra {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := fw.Add(path); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && walker.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn().Err(err).Msg("watching new directory")
					}
				}
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		start := time.Now()
		if err := w.rebuild(); err != nil {
			w.logger.Error().Err(err).Msg("rebuild failed")
			return
		}
		w.logger.Info().Dur("took", time.Since(start)).Msg("rebuilt")
	})
}
