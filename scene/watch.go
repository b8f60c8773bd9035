package scene

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch loads the scene at path, calls fn with it, then reloads it and calls
// fn again each time the file is written, until ctx is cancelled.
// The parent directory is watched so that editors replacing the file by a
// rename are followed. Reload errors are logged and the last scene is kept.
func Watch(ctx context.Context, path string, logger *log.Logger, fn func(*Scene)) error {
	if logger == nil {
		logger = log.Default()
	}

	s, err := Load(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}

	fn(s)

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			s, err := Load(path)
			if err != nil {
				logger.Error("reload scene", "path", path, "err", err)
				continue
			}
			logger.Debug("scene reloaded", "path", path, "shapes", len(s.Shapes))
			fn(s)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch scene", "path", path, "err", err)
		}
	}
}
