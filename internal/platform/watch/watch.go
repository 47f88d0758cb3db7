// Package watch triggers callbacks when local files change
package watch

import (
	"context"
	"path/filepath"
	"time"

	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events a single save produces
const DefaultDebounce = 500 * time.Millisecond

// Files calls fn once per settled change to any of paths until ctx ends
// parent directories are watched so atomic rename-on-save editors are seen
func Files(ctx context.Context, paths []string, debounce time.Duration, fn func(context.Context)) error {
	if len(paths) == 0 {
		return nil
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := *logger.Named("watch")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "start file watcher")
	}
	defer func() { _ = w.Close() }()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "watch path %s", p)
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeNotFound, "watch dir %s", dir)
		}
		dirs[dir] = struct{}{}
	}
	log.Info().Strs("paths", paths).Dur("debounce", debounce).Msg("watching files")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, _ := filepath.Abs(ev.Name)
			if _, ok := targets[abs]; !ok {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change seen")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			fn(ctx)
		}
	}
}
