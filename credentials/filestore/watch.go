package filestore

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long Watch waits for further events before reporting a change
const DefaultDebounce = 150 * time.Millisecond

// Watch calls onChange whenever another process rewrites or deletes the
// credentials file. Bursts of events are debounced and changes that match
// this process's own last write are ignored. It blocks until ctx is done.
func (f *FileStore) Watch(ctx context.Context, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "FileStore.Watch NewWatcher")
	}
	defer watcher.Close()

	// Watch the directory, the file is replaced by rename on every write
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return errors.Wrap(err, "FileStore.Watch Add")
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", f.path).Msg("Credentials watcher error")

		case <-timer.C:
			if f.isOwnWrite() {
				continue
			}
			log.Debug().Str("path", f.path).Msg("Credentials changed by another process")
			onChange()
		}
	}
}
