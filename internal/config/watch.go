package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path    string
	logger  *log.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path's directory. Editors that save by
// renaming a temp file over path are picked up as a Create.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{path: filepath.Clean(path), logger: logger, watcher: fw}, nil
}

// Run delivers every successfully parsed reload to onChange until ctx is
// done. A file that fails to parse is logged and the previous config stays
// in effect.
func (w *Watcher) Run(ctx context.Context, onChange func(*UserConfig)) error {
	defer func() { _ = w.watcher.Close() }()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(ReloadDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(ReloadDebounce)
			}

		case <-fire:
			cfg, err := LoadUserConfigFile(w.path, w.logger)
			if err != nil {
				w.logger.Warn("config reload failed, keeping current config", "path", w.path, "err", err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)
			onChange(cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "err", err)
		}
	}
}
