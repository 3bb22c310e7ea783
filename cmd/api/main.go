package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/keepup-loyalty/internal/config"
	"github.com/fairyhunter13/keepup-loyalty/internal/repository"
	"github.com/fairyhunter13/keepup-loyalty/internal/repository/memory"
	"github.com/fairyhunter13/keepup-loyalty/internal/seed"
	"github.com/fairyhunter13/keepup-loyalty/internal/server"
	"github.com/fairyhunter13/keepup-loyalty/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	ds, err := loadDataset(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load seed dataset")
	}

	var (
		repos   server.Repositories
		closeFn = func() {}
	)
	switch cfg.Store.Driver {
	case config.StorePostgres:
		// Initialize database pool with retry
		pool, err := database.NewPool(ctx, cfg.DB.DSN(), database.DefaultRetryPolicy)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if cfg.Store.Migrate {
			if err := database.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("failed to apply migrations")
			}
		}
		if cfg.Store.SeedOnStart {
			seeded, err := repository.SeedIfEmpty(ctx, pool, ds)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to seed database")
			}
			log.Info().Bool("seeded", seeded).Msg("seed check complete")
		}
		repos = server.PostgresRepositories(pool)
		closeFn = func() {
			// Close database pool AFTER server shutdown (even if shutdown timed out)
			log.Info().Msg("closing database connections...")
			pool.Close()
			log.Info().Msg("database connections closed")
		}
	default:
		repos = server.MemoryRepositories(memory.New(ds))
	}
	log.Info().Str("store", repos.Driver).Msg("store ready")

	app := server.NewApp(repos, server.Options{AllowOrigins: cfg.Server.CORSOrigins})

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	closeFn()
	log.Info().Msg("server stopped")
}

// loadDataset reads SEED_FILE when set, otherwise the embedded demo data.
func loadDataset(cfg *config.Config) (*seed.Dataset, error) {
	today := time.Now()
	if cfg.Store.SeedFile != "" {
		log.Info().Str("path", cfg.Store.SeedFile).Msg("loading seed file")
		return seed.LoadFile(cfg.Store.SeedFile, today)
	}
	return seed.Default(today)
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
