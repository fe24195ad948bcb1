package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commandcenter-backend/config"
	"commandcenter-backend/handlers"
	"commandcenter-backend/logging"
	"commandcenter-backend/repository"
	"commandcenter-backend/seed"
	"commandcenter-backend/service"
	"commandcenter-backend/storage"
	"commandcenter-backend/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	// Initialize storage
	blobs, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("storage initialized", zap.String("type", string(cfg.Storage.Type)))

	snap, err := seed.Demo()
	if err != nil {
		return err
	}
	store, err := repository.LoadCaseStore(snap)
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics()

	// Initialize services
	caseService := service.NewCaseService(
		service.WithCaseStore(store),
		service.WithBlobStorage(blobs),
		service.WithCaseLogger(logger.Named("case")),
	)
	reconService := service.NewReconService(
		service.WithReconConfig(cfg.Recon),
		service.WithReconLogger(logger.Named("recon")),
		service.WithReconMetrics(metrics),
	)

	r := handlers.NewRouter(handlers.RouterDeps{
		CaseService:    caseService,
		ReconService:   reconService,
		Logger:         logger.Named("http"),
		Metrics:        metrics,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
