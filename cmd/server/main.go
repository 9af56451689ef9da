package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"descgate/internal/config"
	"descgate/internal/email/noop"
	"descgate/internal/email/ses"
	"descgate/internal/handler"
	"descgate/internal/port"
	"descgate/internal/repository/postgres"
	"descgate/internal/router"
	"descgate/internal/service"
	s3storage "descgate/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	stateRepo := postgres.NewAssetStateRepo(db)
	recordRepo := postgres.NewGateRecordRepo(db)

	// Initialize storage (optional; only needed when archiving is enabled)
	var storage port.ObjectStorage
	if cfg.Gate.ArchiveSubmissions {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize notifier
	var notifier port.Notifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.StewardAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier()
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT, cfg.Auth)
	gateSvc := service.NewGateService(stateRepo, recordRepo, storage, notifier, cfg.Gate, cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	gateH := handler.NewGateHandler(gateSvc)
	recordH := handler.NewRecordHandler(gateSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, gateH, recordH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the scan queue worker
	worker := service.NewScanQueueWorker(recordRepo, gateSvc, service.ScanQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone

	return nil
}
