package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/checktree/internal/api"
	"github.com/dgallion1/checktree/internal/config"
	"github.com/dgallion1/checktree/internal/parser"
	"github.com/dgallion1/checktree/internal/session"
	"github.com/dgallion1/checktree/internal/stats"
	"github.com/dgallion1/checktree/internal/watch"
)

// defaultTreeID is the session preloaded from DATA_FILE.
const defaultTreeID = "default"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("load configuration", "error", err)
		os.Exit(1)
	}
	log := cfg.Logger(os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewStore(cfg.SessionTTL, cfg.MaxSessions)
	go cleanupLoop(ctx, store, cfg.SessionTTL, log)

	if cfg.DataFile != "" {
		if err := preload(ctx, cfg, store, log); err != nil {
			log.Error("preload data file", "file", cfg.DataFile, "error", err)
			os.Exit(1)
		}
	}

	srv := api.NewServer(store, stats.NewLatency(time.Hour), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting checktree", "port", cfg.Port, "sessions_max", cfg.MaxSessions)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// preload creates the pinned default session from DATA_FILE and, if
// enabled, keeps it in sync with the file.
func preload(ctx context.Context, cfg config.Config, store *session.Store, log *slog.Logger) error {
	sess := session.New(defaultTreeID, "", cfg.WidgetOptions())
	sess.Pinned = true

	reload := func(context.Context) error {
		data, err := os.ReadFile(cfg.DataFile)
		if err != nil {
			return err
		}
		hash := session.ContentHashHex(data)
		if hash == sess.Hash() {
			return nil
		}
		p, err := parser.ForFile(cfg.DataFile)
		if err != nil {
			return err
		}
		doc, err := p.Parse(bytes.NewReader(data), cfg.DataFile)
		if err != nil {
			return fmt.Errorf("parse %s: %w", cfg.DataFile, err)
		}
		return sess.Load(session.Source{
			Title:   doc.Title,
			Items:   doc.Items,
			Checked: doc.Checked,
			Hash:    hash,
		})
	}

	if err := reload(ctx); err != nil {
		return err
	}
	if err := store.Put(sess); err != nil {
		return err
	}
	log.Info("preloaded data file", "file", cfg.DataFile, "tree_id", defaultTreeID)

	if cfg.WatchDataFile {
		go func() {
			if err := watch.File(ctx, cfg.DataFile, log, reload); err != nil {
				log.Error("watch data file", "file", cfg.DataFile, "error", err)
			}
		}()
	}
	return nil
}

func cleanupLoop(ctx context.Context, store *session.Store, ttl time.Duration, log *slog.Logger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Cleanup(); n > 0 {
				log.Info("expired sessions removed", "count", n, "remaining", store.Len())
			}
		}
	}
}
