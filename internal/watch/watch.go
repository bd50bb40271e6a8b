package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before it is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls Reload when Path changes on disk. The parent directory is
// watched so editors that replace the file by rename are picked up.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Log      *slog.Logger
	Reload   func(ctx context.Context) error

	// Retries is how many times a failed reload is retried; 0 means
	// MaxRetries, negative disables retrying.
	Retries int
}

// File watches path until ctx is cancelled, using DefaultDebounce.
func File(ctx context.Context, path string, log *slog.Logger, reload func(context.Context) error) error {
	w := &Watcher{Path: path, Debounce: DefaultDebounce, Log: log, Reload: reload}
	return w.Run(ctx)
}

// Run blocks until ctx is cancelled. It returns an error only if the
// watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.Path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := w.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("file", abs)
	log.Info("watching data file")

	retries := w.Retries
	if retries == 0 {
		retries = MaxRetries
	}
	attempt := 0

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				attempt = 0
				timer.Reset(debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case <-timer.C:
			if err := w.Reload(ctx); err != nil {
				if attempt < retries {
					delay := Backoff(debounce, attempt)
					attempt++
					log.Warn("reload failed, retrying", "error", err, "attempt", attempt, "delay", delay)
					timer.Reset(delay)
					continue
				}
				log.Error("reload failed", "error", err, "attempts", attempt+1)
				attempt = 0
				continue
			}
			attempt = 0
			log.Info("data file reloaded")
		}
	}
}
