package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long Watch waits after the last change to a file before
// reloading it.
var Debounce = 100 * time.Millisecond

// Watch reloads the file at path whenever it is written and passes the
// result to fn. The directory is watched rather than the file so that
// editors replacing the file by rename are seen. Watching stops when ctx
// is done. fn is always called from the same goroutine.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	delay := Debounce
	reload := make(chan struct{}, 1)
	errs := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-reload:
				fn(Load(path))
			case err := <-errs:
				fn(nil, err)
			}
		}
	}()

	go func() {
		defer w.Close()

		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(delay, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				select {
				case errs <- fmt.Errorf("watch %s: %w", path, err):
				default:
				}
			}
		}
	}()
	return nil
}
