package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the global configuration whenever the config file is
// rewritten. Blocks until the context is cancelled. Returns nil when the
// config file's directory doesn't exist (nothing to watch).
func Watch(ctx context.Context, log *zap.Logger) error {
	path := Get().ConfigFilePath()
	if path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		log.Info("config file not watchable, hot reload disabled",
			zap.String("path", path), zap.Error(err))
		<-ctx.Done()
		return nil
	}

	log.Info("watching config file", zap.String("path", path))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := Reload(); err != nil {
					log.Error("config reload failed", zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", path))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("config watcher error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}
