// Package watch reports changes to room files on disk.
package watch

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Debounce is the window in which repeated events for one file collapse.
const Debounce = 100 * time.Millisecond

var roomExtensions = []string{".yaml", ".yml", ".png", ".bmp"}

// Dir watches dir and its subdirectories until ctx is done, calling
// onChange with the path of every changed room file or bitmap.
// onChange runs on the watcher goroutine.
func Dir(ctx context.Context, dir string, onChange func(path string), logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Debug("watching rooms", "dir", dir)

	last := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsRoomFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			logger.Debug("room file changed", "path", event.Name, "op", event.Op)
			onChange(event.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// IsRoomFile reports whether path has a room file or bitmap extension.
func IsRoomFile(path string) bool {
	return slices.Contains(roomExtensions, strings.ToLower(filepath.Ext(path)))
}
