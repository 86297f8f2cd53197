package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the path of each manifest in paths that is
// written or recreated, until ctx is done. Editors that replace files on
// save are handled by watching the parent directories. Watcher diagnostics
// go to logger, or slog.Default when logger is nil.
func Watch(ctx context.Context, logger *slog.Logger, paths []string, onChange func(path string)) error {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()

	tracked := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching manifest directory", slog.String("dir", dir))
		dirs[dir] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !tracked[name] {
				continue
			}
			onChange(name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("manifest watcher error", slog.String("err", err.Error()))
		}
	}
}
