package fs

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange once writes to any of files have been quiet for
// debounce. It watches the parent directories, since editors often replace
// a file instead of writing it in place. Watch blocks until ctx is done.
func Watch(ctx context.Context, files []string, debounce time.Duration, onChange func(reason string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		dirs[dir] = struct{}{}
		slog.Info("watching for changes", slog.String("path", dir))
	}

	var (
		mu     sync.Mutex
		timer  *time.Timer
		reason string
	)
	trigger := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		reason = name
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			mu.Lock()
			r := reason
			mu.Unlock()
			onChange(r)
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, ok := watched[filepath.Clean(event.Name)]; !ok {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				slog.Info("file event detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
				trigger(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", slog.String("err", err.Error()))
		case <-ctx.Done():
			return nil
		}
	}
}
