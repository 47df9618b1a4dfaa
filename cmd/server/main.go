package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/filedeck/filedeck/internal/asyncops"
	"github.com/filedeck/filedeck/internal/bookmarks"
	"github.com/filedeck/filedeck/internal/config"
	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/monitoring"
	"github.com/filedeck/filedeck/internal/server"
)

func main() {
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dev {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	metrics := monitoring.NewMetrics()

	mgr := asyncops.New(asyncops.Config{
		Workers:       cfg.Exec.Workers,
		QueueSize:     cfg.Exec.QueueSize,
		EvictionGrace: cfg.Exec.EvictionGrace,
	}, logger).WithMetrics(metrics)

	store, err := bookmarks.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal("Failed to open bookmark store",
			zap.String("path", cfg.Store.Path),
			zap.Error(err),
		)
	}
	logger.Info("Bookmark store loaded",
		zap.String("path", cfg.Store.Path),
		zap.Int("entries", store.Len()),
	)

	srv := server.New(cfg, mgr, store, logger, metrics)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
		}
	}

	// Drain HTTP first so waiting clients resolve, then stop the workers.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	mgr.Close()

	if err := store.Save(); err != nil {
		logger.Error("Failed to persist bookmark store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
