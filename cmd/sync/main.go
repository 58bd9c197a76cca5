// Command sync performs a single synchronization run and exits. Useful from
// cron or for verifying credentials.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ortiq01/financial-dashboard/internal/config"
	"github.com/ortiq01/financial-dashboard/internal/gocardless"
	applog "github.com/ortiq01/financial-dashboard/internal/log"
	"github.com/ortiq01/financial-dashboard/internal/storage"
	syncpkg "github.com/ortiq01/financial-dashboard/internal/sync"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if !cfg.HasCredentials() {
		logger.Error("GOCARDLESS_SECRET_ID and GOCARDLESS_SECRET_KEY are required")
		os.Exit(1)
	}

	snapshots := storage.NewSnapshotFile(cfg.SnapshotPath)

	newClient := func(secretID, secretKey string) syncpkg.AggregatorClient {
		return gocardless.NewClient(secretID, secretKey,
			gocardless.WithBaseURL(cfg.GoCardlessBaseURL),
			gocardless.WithTimeout(cfg.GoCardlessTimeout))
	}

	engine := syncpkg.NewEngine(snapshots, newClient,
		syncpkg.Config{FetchConcurrency: cfg.FetchConcurrency})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := engine.Run(ctx, syncpkg.Credentials{
		SecretID:  cfg.GoCardlessSecretID,
		SecretKey: cfg.GoCardlessSecretKey,
	}, cfg.GoCardlessAccounts)
	if err != nil {
		logger.Error("Sync failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("synced %d transactions (%d total) across %d accounts -> %s\n",
		res.Added, res.Total, len(res.UsedAccounts), res.File)
}
