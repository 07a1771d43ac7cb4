// Package watcher watches the dataset file and triggers a full reload
// when it changes. Editors and exporters replace files by rename, so the
// watch is on the containing directory filtered to the dataset name.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce absorbs the event bursts a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher invokes a callback when the dataset file is rewritten.
type Watcher struct {
	path     string
	onChange func(path string)

	fw     *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc

	lastEvent time.Time
	debounce  time.Duration
}

// New creates a watcher for the dataset at path. onChange runs on the
// watcher's goroutine; callers needing serialization hand off themselves.
func New(path string, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		onChange: onChange,
		fw:       fw,
		ctx:      ctx,
		cancel:   cancel,
		debounce: DefaultDebounce,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	go w.watchLoop()
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.cancel()
	w.fw.Close()
}

func (w *Watcher) watchLoop() {
	base := filepath.Base(w.path)
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			// Write for in-place saves, Create and Rename for the
			// write-temp-then-rename pattern.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now

			w.onChange(w.path)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}
