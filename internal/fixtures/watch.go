package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch invalidates cached files as they change on disk and calls onChange
// (if non-nil) with the changed path. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(s.dataPath); err != nil {
		return err
	}
	dir := filepath.Join(s.dataPath, projectsDir)
	if _, err := os.Stat(dir); err == nil {
		if err := w.Add(dir); err != nil {
			s.logger.Warn("failed to watch projects directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	s.logger.Info("watching fixtures", zap.String("path", s.dataPath))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			s.Invalidate(event.Name)
			if onChange != nil {
				onChange(event.Name)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("fixture watcher error", zap.Error(err))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".json") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
