package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ortiq01/financial-dashboard/internal/amqp"
	"github.com/ortiq01/financial-dashboard/internal/config"
	"github.com/ortiq01/financial-dashboard/internal/gocardless"
	apphttp "github.com/ortiq01/financial-dashboard/internal/http"
	applog "github.com/ortiq01/financial-dashboard/internal/log"
	gsheet "github.com/ortiq01/financial-dashboard/internal/sheets/google"
	"github.com/ortiq01/financial-dashboard/internal/storage"
	syncpkg "github.com/ortiq01/financial-dashboard/internal/sync"
	"github.com/ortiq01/financial-dashboard/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	snapshots := storage.NewSnapshotFile(cfg.SnapshotPath)

	newClient := func(secretID, secretKey string) syncpkg.AggregatorClient {
		return gocardless.NewClient(secretID, secretKey,
			gocardless.WithBaseURL(cfg.GoCardlessBaseURL),
			gocardless.WithTimeout(cfg.GoCardlessTimeout))
	}

	var engineOpts []syncpkg.EngineOption

	// Optional sync-completed events over AMQP
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		engineOpts = append(engineOpts, syncpkg.WithNotifier(amqpClient))
		logger.Info("AMQP notifications enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	// Optional Google Sheets mirror of fetched transactions
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		engineOpts = append(engineOpts, syncpkg.WithMirror(sheetsClient))
		logger.Info("Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	engine := syncpkg.NewEngine(snapshots, newClient,
		syncpkg.Config{FetchConcurrency: cfg.FetchConcurrency}, engineOpts...)
	tracker := syncpkg.NewTracker(engine)

	creds := syncpkg.Credentials{
		SecretID:  cfg.GoCardlessSecretID,
		SecretKey: cfg.GoCardlessSecretKey,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background sync only makes sense with credentials in the environment
	var scheduler *worker.Scheduler
	if cfg.HasCredentials() {
		scheduler = worker.NewScheduler(tracker, creds, cfg.GoCardlessAccounts, worker.SchedulerConfig{
			Interval:   cfg.SyncInterval,
			RunOnStart: cfg.SyncOnStart,
		})
		if err := scheduler.Start(ctx); err != nil {
			logger.Error("Failed to start sync scheduler", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("No GoCardless credentials configured, background sync disabled")
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:        ":" + cfg.Port,
		StaticDir:   cfg.StaticDir,
		Credentials: creds,
		AccountIDs:  cfg.GoCardlessAccounts,
	}, tracker, repo, snapshots)

	srv.ReadTimeout = 15 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if scheduler != nil {
			if err := scheduler.Stop(shutdownCtx); err != nil {
				logger.Error("Scheduler shutdown error", "error", err)
			}
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting dashboard server", "port", cfg.Port, "static_dir", cfg.StaticDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
