package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/spektr-org/dataviews/internal/logger"
	"github.com/spektr-org/dataviews/templates"
)

// ReloadFunc receives the records after every change, or the fetch error.
type ReloadFunc func([]templates.Template, error)

// Watch refetches src whenever its file is written or recreated and hands the
// result to fn. The parent directory is watched so that editors replacing the
// file by rename are noticed. Watch blocks until ctx is done.
func Watch(ctx context.Context, src *FileSource, fn ReloadFunc) error {
	absPath, err := filepath.Abs(src.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	log := logger.FromContext(ctx).With("path", absPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("Records file changed", "op", event.Op.String())
			fn(src.Fetch(ctx))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("File watcher error", "error", err)
		}
	}
}
