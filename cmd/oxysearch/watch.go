package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/deepnoodle-ai/oxysearch/config"
	"github.com/deepnoodle-ai/oxysearch/slogger"
	"github.com/fsnotify/fsnotify"
)

// ConfigWatcherOptions holds configuration for a ConfigWatcher
type ConfigWatcherOptions struct {
	// Path is the --config value: a file, directory, or glob pattern.
	Path string

	// Current is the configuration in effect when watching starts.
	Current *config.Config

	// Debounce collapses bursts of events, e.g. an editor's
	// write-rename-chmod sequence, into one reload.
	Debounce time.Duration

	Logger slogger.Logger

	// OnChange receives each successfully loaded configuration that differs
	// from the previous one.
	OnChange func(*config.Config) error
}

// ConfigWatcher reloads the configuration when its files change
type ConfigWatcher struct {
	options ConfigWatcherOptions
	watcher *fsnotify.Watcher
	logger  slogger.Logger
	current *config.Config
	watched map[string]bool
}

// NewConfigWatcher creates a watcher for the directories holding the
// configuration files.
func NewConfigWatcher(options ConfigWatcherOptions) (*ConfigWatcher, error) {
	if options.Path == "" {
		return nil, errors.New("config path is required")
	}
	if options.OnChange == nil {
		return nil, errors.New("change handler is required")
	}
	if options.Logger == nil {
		options.Logger = slogger.DefaultLogger
	}
	if options.Current == nil {
		options.Current = &config.Config{}
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw := &ConfigWatcher{
		options: options,
		watcher: watcher,
		logger:  options.Logger,
		current: options.Current,
		watched: make(map[string]bool),
	}
	if err := cw.addWatchPaths(); err != nil {
		watcher.Close()
		return nil, err
	}
	return cw, nil
}

// Start processes file events until ctx is done
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	defer cw.watcher.Close()

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if isNewDir(event) {
				if err := cw.addWatchPaths(); err != nil {
					cw.logger.Warn("failed to watch new config directory", "dir", event.Name, "error", err)
				}
				reload = time.After(cw.options.Debounce)
				continue
			}
			if !cw.isRelevant(event) {
				continue
			}
			cw.logger.Debug("config file event", "file", event.Name, "op", event.Op.String())
			reload = time.After(cw.options.Debounce)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			cw.logger.Error("config watcher error", "error", err)
		case <-reload:
			reload = nil
			cw.reload()
		}
	}
}

// reload keeps the current configuration when the new one fails to load or
// is rejected by OnChange.
func (cw *ConfigWatcher) reload() {
	next, err := config.Load(cw.options.Path)
	if err != nil {
		cw.logger.Error("config reload failed", "error", err)
		return
	}
	if reflect.DeepEqual(cw.current, next) {
		cw.logger.Debug("config unchanged")
		return
	}
	if err := cw.options.OnChange(next); err != nil {
		cw.logger.Error("config change rejected", "error", err)
		return
	}
	previous := cw.current
	cw.current = next

	// Diff redacts passwords, so a credential rotation renders no lines.
	diff, err := config.Diff(previous, next)
	switch {
	case err != nil:
		cw.logger.Info("config reloaded", "diff_error", err)
	case diff == "":
		cw.logger.Info("config reloaded", "changed", "password")
	default:
		cw.logger.Info("config reloaded", "diff", diff)
	}
}

// addWatchPaths watches the directories holding the configuration rather
// than the files. Editors that save by renaming a temp file over the
// original would otherwise drop the watch. It runs again whenever a
// directory is created so new subdirectories matched by a glob are watched.
func (cw *ConfigWatcher) addWatchPaths() error {
	dirs, err := config.WatchDirs(cw.options.Path)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if cw.watched[dir] {
			continue
		}
		if err := cw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		cw.logger.Debug("watching directory", "dir", dir)
		cw.watched[dir] = true
	}
	return nil
}

func isNewDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	fi, err := os.Stat(event.Name)
	return err == nil && fi.IsDir()
}

func (cw *ConfigWatcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
