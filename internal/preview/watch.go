package preview

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/kssg/internal/logfields"
)

// newWatcher watches root and every directory below it.
func newWatcher(root string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(w, root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && shouldIgnoreEvent(p) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			slog.Warn("Failed to watch directory", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

// watchLoop calls rebuild for every relevant event. Rebuilds run on this
// goroutine, so events arriving during a build wait for it to finish. It
// returns when ctx is done or the watcher closes.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, rebuild func(context.Context)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if handleEvent(w, ev) {
				rebuild(ctx)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// handleEvent reports whether ev should trigger a rebuild. New directories
// are added to the watch list.
func handleEvent(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) || ev.Op == fsnotify.Chmod {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	return true
}

// shouldIgnoreEvent reports whether path is a hidden, editor temporary or
// operating system metadata file.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}
	if base == "4913" || base == "Thumbs.db" {
		return true
	}
	return false
}
