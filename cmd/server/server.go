package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/janhq/playground-api/internal/config"
	"github.com/janhq/playground-api/internal/domain/model"
	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/domain/template"
	"github.com/janhq/playground-api/internal/infrastructure/logger"
	"github.com/janhq/playground-api/internal/infrastructure/metrics"
	"github.com/janhq/playground-api/internal/infrastructure/observability"
	templaterepo "github.com/janhq/playground-api/internal/infrastructure/repository/template"
	"github.com/janhq/playground-api/internal/infrastructure/seed"
	"github.com/janhq/playground-api/internal/interfaces/httpserver"
)

// @title Playground API
// @version 1.0
// @description Mock backend for the prompt playground
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	data, err := newSeedData(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed data")
	}

	service, err := playground.NewService(
		templaterepo.NewInMemoryRepository(),
		newCatalog(data),
		newSeeds(data),
		newLatency(cfg),
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize playground service")
	}
	live, err := service.CountTemplates(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("count seeded templates")
	}
	metrics.SetTemplatesLive(live)

	httpServer := httpserver.New(cfg, log, service)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return log.With().Str("service", cfg.ServiceName).Logger(), nil
}

func newSeedData(cfg *config.Config, log zerolog.Logger) (seed.Data, error) {
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return seed.Data{}, err
	}
	log.Info().
		Str("seed_file", cfg.SeedFile).
		Int("models", len(data.Models)).
		Int("templates", len(data.Templates)).
		Msg("seed data loaded")
	return data, nil
}

func newCatalog(data seed.Data) *model.Catalog {
	return data.Catalog()
}

func newSeeds(data seed.Data) []template.Seed {
	return data.Templates
}

func newLatency(cfg *config.Config) playground.Latency {
	return playground.Latency{
		Models:     cfg.LatencyModels,
		Model:      cfg.LatencyModel,
		Completion: cfg.LatencyCompletion,
		Templates:  cfg.LatencyTemplates,
		Template:   cfg.LatencyTemplate,
		Search:     cfg.LatencySearch,
		Save:       cfg.LatencySave,
		Update:     cfg.LatencyUpdate,
		Delete:     cfg.LatencyDelete,
		Reset:      cfg.LatencyReset,
	}.Scaled(cfg.LatencyScale)
}
