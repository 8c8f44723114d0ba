// Package watcher scans notebooks on disk for broken cell links as they are
// saved, optionally repairing them in place.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/chapyter/cellsync"
	"github.com/chapyter/cellsync/internal/ipynb"
)

// Watcher watches a directory tree for notebook saves.
type Watcher struct {
	watcher    *fsnotify.Watcher
	rootDir    string
	autoRepair bool
	recorder   cellsync.LinkRecorder // may be nil
	done       chan bool
	debug      bool
}

// NewWatcher creates a watcher over the given directory. With autoRepair set,
// notebooks with broken links are rewritten in place; otherwise findings are
// only logged.
func NewWatcher(rootDir string, autoRepair bool, recorder cellsync.LinkRecorder, debug bool) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    fsWatcher,
		rootDir:    rootDir,
		autoRepair: autoRepair,
		recorder:   recorder,
		done:       make(chan bool),
		debug:      debug,
	}

	if err := w.addDirectoryRecursive(rootDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// addDirectoryRecursive adds a directory and all its subdirectories to the watcher.
func (w *Watcher) addDirectoryRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			// Skip hidden dirs and Jupyter's checkpoint copies
			if strings.HasPrefix(name, ".") || name == ".ipynb_checkpoints" {
				return filepath.SkipDir
			}

			if err := w.watcher.Add(path); err != nil {
				return err
			}

			if w.debug {
				log.Printf("[Watch] Added directory: %s", path)
			}
		}

		return nil
	})
}

// Start begins watching for notebook changes.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}

				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					if filepath.Ext(event.Name) == ".ipynb" && !strings.Contains(event.Name, ".ipynb_checkpoints") {
						w.checkNotebook(event.Name)
					}
					// New subdirectories need to be added to the watch set
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := w.addDirectoryRecursive(event.Name); err != nil {
							log.Printf("[Watch] Failed to watch %s: %v", event.Name, err)
						}
					}
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[Watch] Error: %v", err)

			case <-w.done:
				return
			}
		}
	}()
}

// checkNotebook scans one saved notebook for broken links. A repaired
// notebook scans clean on the rewrite this triggers, so auto-repair cannot
// loop.
func (w *Watcher) checkNotebook(path string) {
	doc, err := ipynb.Load(path)
	if err != nil {
		log.Printf("[Watch] Failed to load %s: %v", path, err)
		return
	}

	nb := doc.Notebook()
	report := cellsync.Scan(nb)
	if report.Empty() {
		if w.debug {
			log.Printf("[Watch] %s: links OK", path)
		}
		return
	}

	log.Printf("[Watch] %s: %d broken link(s) (%d dangling, %d stale, %d duplicate)",
		path, report.Total(), len(report.Dangling), len(report.Stale), len(report.Duplicates))

	if !w.autoRepair {
		return
	}

	cellsync.Repair(nb, w.recorder)
	doc.Apply(nb)
	if err := doc.Save(path); err != nil {
		log.Printf("[Watch] Failed to save repaired %s: %v", path, err)
		return
	}
	log.Printf("[Watch] Repaired %s", path)
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
