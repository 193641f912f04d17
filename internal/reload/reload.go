// Package reload re-runs a callback when content files change on disk.
package reload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Options tunes Watch.
type Options struct {
	Debounce time.Duration
	Logger   *zap.Logger
}

type targets struct {
	files map[string]bool
	dirs  []string
}

// relevant reports whether a change to name concerns a watched file or
// something below a watched directory.
func (t targets) relevant(name string) bool {
	name = filepath.Clean(name)
	if t.files[name] {
		return true
	}
	for _, dir := range t.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Watch blocks until ctx is done, calling fn after changes to any of paths.
// Files are watched through their parent directory so editors that replace
// the file on save are still seen; directories are watched recursively.
func Watch(ctx context.Context, paths []string, opts Options, fn func(context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("reload: new watcher: %w", err)
	}
	defer watcher.Close()

	t := targets{files: make(map[string]bool)}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("reload: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("reload: %w", err)
		}
		if !info.IsDir() {
			t.files[abs] = true
			if err := watcher.Add(filepath.Dir(abs)); err != nil {
				return fmt.Errorf("reload: watch %s: %w", abs, err)
			}
			continue
		}
		t.dirs = append(t.dirs, abs)
		if err := addTree(watcher, abs); err != nil {
			return err
		}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !t.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addTree(watcher, event.Name)
				}
			}
			logger.Debug("content change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Stop()
				timer.Reset(opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("content watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			if err := fn(ctx); err != nil {
				logger.Error("content reload failed", zap.Error(err))
				continue
			}
			logger.Info("content reloaded")
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("reload: watch %s: %w", p, err)
		}
		return nil
	})
}
