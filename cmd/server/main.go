// Package main is the entry point for the Verdant server.
//
// Startup sequence:
// 1. Loads configuration from environment variables (.env file)
// 2. Initializes structured logging
// 3. Opens the universe and client data databases and applies migrations
// 4. Wires the market data client, repositories and the portfolio aggregator
// 5. Starts the HTTP server in a goroutine
// 6. Registers and starts scheduled jobs (cache cleanup, universe refresh, backup)
// 7. Waits for shutdown signal and performs graceful shutdown
//
// The application uses a 2-database architecture:
// - universe.db: The sustainable investment universe (securities, categories)
// - client_data.db: TTL cache for provider quotes and close series
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/verdantlab/verdant/internal/clientdata"
	"github.com/verdantlab/verdant/internal/clients/yahoo"
	"github.com/verdantlab/verdant/internal/config"
	"github.com/verdantlab/verdant/internal/database"
	"github.com/verdantlab/verdant/internal/modules/portfolio"
	"github.com/verdantlab/verdant/internal/modules/universe"
	"github.com/verdantlab/verdant/internal/reliability"
	"github.com/verdantlab/verdant/internal/scheduler"
	"github.com/verdantlab/verdant/internal/server"
	"github.com/verdantlab/verdant/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Verdant")

	// Databases
	universeDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "universe.db"),
		Profile: database.ProfileStandard,
		Name:    "universe",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open universe database")
	}
	defer universeDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{universeDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Failed to migrate database")
		}
	}

	// Repositories and clients
	cacheRepo := clientdata.NewRepository(cacheDB, log)
	yahooClient := yahoo.NewClient(cfg.MarketDataBaseURL, cacheRepo, log)

	universeRepo := universe.NewRepository(universeDB, log)
	if err := universeRepo.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed universe")
	}

	aggregator := portfolio.NewAggregator(yahooClient, log)

	// HTTP server
	srv := server.New(server.Config{
		Log:          log,
		Config:       cfg,
		UniverseDB:   universeDB,
		CacheDB:      cacheDB,
		Aggregator:   aggregator,
		UniverseRepo: universeRepo,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Scheduled jobs
	sched := scheduler.New(log)

	cleanupJob := clientdata.NewCleanupJob(cacheRepo, log)
	if err := sched.AddJob("0 0 3 * * *", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}

	refreshJob := universe.NewRefreshJob(universeRepo, yahooClient, log)
	if err := sched.AddJob("0 15 * * * *", refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register universe refresh job")
	}

	if cfg.Backup != nil && cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(cfg.Backup, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 client")
		}

		backupSvc := reliability.NewBackupService(
			s3Client,
			[]*database.DB{universeDB, cacheDB},
			cfg.DataDir,
			cfg.Backup.RetainCount,
			log,
		)
		if err := sched.AddJob("0 30 2 * * *", reliability.NewBackupJob(backupSvc)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register backup job")
		}
	} else {
		log.Info().Msg("Backups disabled, no credentials configured")
	}

	sched.Start()

	// Warm the universe on startup so the first screening request has
	// data to serve
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial universe refresh failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
