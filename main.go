package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/blog-backend/api"
	"github.com/rpupo63/blog-backend/config"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("blog backend stopped")
	}
}

func run() error {
	env, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}
	settings := config.FromMap(env)

	setupLogging(settings)
	log.Info().Str("env", settings.Env).Str("dbType", settings.DBType).Msg("Initializing app...")

	db, err := database.Open(database.Options{
		Driver:      settings.DBType,
		DSN:         settings.DatabaseURL,
		ReplicaDSNs: settings.ReplicaURLs,
		LogLevel:    gormLogLevel(settings.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	currentDB := database.New(db)

	// If generating models, run generation and exit
	if settings.GenerateModels {
		log.Info().Msg("Generating models and query helpers...")
		return models.GenerateModels(db, "./query")
	}

	// If generating column mismatch report, run report and exit
	if settings.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		return models.WriteColumnReport(os.Stdout, db)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := currentDB.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	server, err := api.NewServer(currentDB, settings)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		return server.ShutdownGracefully(shutdownTimeout)
	})
	return g.Wait()
}

func setupLogging(settings config.Settings) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !settings.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug", "trace":
		return logger.Info
	case "error", "fatal", "panic":
		return logger.Error
	default:
		return logger.Warn
	}
}
