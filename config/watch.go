package config

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of fsnotify events a single save
// produces into one reload, mirroring the debounce window
// processor/source-ingester's file watcher uses for document changes.
const reloadDebounce = 300 * time.Millisecond

// Watcher reloads a project config file on change and calls onReload with
// the freshly loaded Config. Used by the CLI's serve subcommand so stage
// toggles and thresholds can change without a restart; the processor
// component does not watch its config.
type Watcher struct {
	path     string
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	onReload func(*Config)
}

// NewWatcher starts watching path, calling onReload whenever it changes
// and parses successfully. A parse failure is logged and the previous
// config keeps running.
func NewWatcher(path string, logger *slog.Logger, onReload func(*Config)) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{path: path, logger: logger, fsw: fsw, onReload: onReload}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var pending bool
	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = true
				timer.Reset(reloadDebounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", slog.String("error", err.Error()))
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			cfg, err := LoadFromFile(w.path)
			if err != nil {
				w.logger.Warn("config reload failed, keeping previous config",
					slog.String("path", w.path), slog.String("error", err.Error()))
				continue
			}
			if err := cfg.Validate(); err != nil {
				w.logger.Warn("reloaded config failed validation, keeping previous config",
					slog.String("path", w.path), slog.String("error", err.Error()))
				continue
			}
			w.logger.Info("config reloaded", slog.String("path", w.path))
			w.onReload(cfg)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
