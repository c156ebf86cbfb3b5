package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"provenance-explorer/api"
	"provenance-explorer/config"
	"provenance-explorer/reference"
	"provenance-explorer/services"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := reference.Load(cfg.ConstantsDir, logging)
	if err != nil {
		logging.Fatal("Failed to load reference tables", zap.Error(err))
	}

	source, err := services.NewSource(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Failed to set up data summary source", zap.Error(err))
	}
	catalog := services.NewCatalog(cfg, source, tables, logging)

	// Ohne Daten gibt es nichts zu zeigen: Fehler beim ersten Laden sind fatal.
	if _, err := catalog.Reload(ctx); err != nil {
		logging.Fatal("Initial data summary load failed", zap.Error(err))
	}

	// Setup Cron
	var cronScheduler *cron.Cron
	if cfg.ReloadSchedule != "" {
		cronScheduler = cron.New()
		_, err := cronScheduler.AddFunc(cfg.ReloadSchedule, func() {
			logging.Info("Running scheduled reload...")
			count, err := catalog.Reload(context.Background())
			if err != nil {
				logging.Error("Scheduled reload failed, keeping previous snapshot", zap.Error(err))
				return
			}
			logging.Info("Scheduled reload completed", zap.Int("datasets", count))
		})
		if err != nil {
			logging.Fatal("Invalid RELOAD_SCHEDULE", zap.String("schedule", cfg.ReloadSchedule), zap.Error(err))
		}
		cronScheduler.Start()
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg, catalog, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if cronScheduler != nil {
			<-cronScheduler.Stop().Done()
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
	logging.Info("Server stopped")
}
