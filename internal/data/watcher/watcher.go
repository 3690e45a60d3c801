// Package watcher reports changes to the order logs so live views can
// rebuild their report.
package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/util"
)

// Event is a change to one watched file.
type Event struct {
	Path      string
	Operation string
}

// FileWatcher watches a data directory and emits events for the order logs.
// The directory itself is watched so files created after startup are seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	names   map[string]bool
	events  chan Event
	done    chan struct{}
}

// NewOrderLogWatcher watches orders.csv and order_items.csv in dataDir.
func NewOrderLogWatcher(dataDir string) (*FileWatcher, error) {
	return NewFileWatcher(dataDir, constants.OrdersFile, constants.OrderItemsFile)
}

// NewFileWatcher watches dir and reports events for the given base names.
func NewFileWatcher(dir string, names ...string) (*FileWatcher, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	fw := &FileWatcher{
		watcher: w,
		names:   make(map[string]bool, len(names)),
		events:  make(chan Event, 100),
		done:    make(chan struct{}),
	}
	for _, n := range names {
		fw.names[n] = true
	}

	go fw.processEvents()
	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.names[filepath.Base(event.Name)] {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			select {
			case fw.events <- Event{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("file watch error", util.F("error", err.Error()))
		}
	}
}

// Events returns the change channel. It is closed after Close.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
