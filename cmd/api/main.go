package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careloop/visitprep/internal/adapters/events"
	"github.com/careloop/visitprep/internal/adapters/providers/documents"
	"github.com/careloop/visitprep/internal/adapters/providers/healthsync"
	"github.com/careloop/visitprep/internal/adapters/providers/insight"
	"github.com/careloop/visitprep/internal/adapters/providers/transcription"
	"github.com/careloop/visitprep/internal/adapters/storage"
	"github.com/careloop/visitprep/internal/api/handlers"
	"github.com/careloop/visitprep/internal/api/routes"
	"github.com/careloop/visitprep/internal/application/services"
	"github.com/careloop/visitprep/internal/domain/providers"
	"github.com/careloop/visitprep/internal/infrastructure/clients/postgres"
	"github.com/careloop/visitprep/internal/infrastructure/clients/redis"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
	"github.com/careloop/visitprep/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; the app runs without a collector
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis backs both the event bus and the redis storage backend, so it is
	// connected once and shared.
	var redisClient *redis.Client
	if cfg.Storage.Backend == config.StorageBackendRedis || cfg.Env != "development" {
		redisClient, err = redis.NewClient(&cfg.Redis)
		if err != nil {
			if cfg.Storage.Backend == config.StorageBackendRedis {
				logger.Fatal().Err(err).Msg("failed to connect to Redis")
			}
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-process events")
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info().Msg("Redis client initialized")
		}
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
	} else {
		eventBus = events.NewMemoryEventBus()
	}
	defer eventBus.Close()

	docStore, cleanup, err := newDocumentStore(ctx, cfg, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage backend")
	}
	if cleanup != nil {
		defer cleanup()
	}
	logger.Info().Str("backend", cfg.Storage.Backend).Msg("appointment storage initialized")

	repo := storage.NewAppointmentStore(docStore, eventBus)

	insightProvider := insight.NewInsightProvider(cfg)
	healthProvider := healthsync.NewHealthDataProvider(cfg)
	documentProvider := documents.NewDocumentProvider(cfg)
	transcriptionProvider := transcription.NewMockAdapter()

	appointmentService := services.NewAppointmentService(repo)
	workflowService := services.NewVisitWorkflowService(
		repo,
		insightProvider,
		healthProvider,
		documentProvider,
		transcriptionProvider,
		metrics,
	)

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	visitHandler := handlers.NewVisitHandler(workflowService)
	sseHandler := handlers.NewSSEHandler(eventBus)

	router := routes.NewRouter(appointmentHandler, visitHandler, sseHandler, metrics)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}

// newDocumentStore selects the storage medium for the appointment document
func newDocumentStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (storage.DocumentStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := pgClient.EnsureSchema(ctx); err != nil {
			pgClient.Close()
			return nil, nil, err
		}
		return storage.NewPostgresDocumentStore(pgClient), func() { pgClient.Close() }, nil

	case config.StorageBackendRedis:
		if redisClient == nil {
			return nil, nil, fmt.Errorf("redis storage backend requires a Redis connection")
		}
		return storage.NewRedisDocumentStore(redisClient, cfg.Storage.RedisKey), nil, nil

	default:
		return storage.NewFileDocumentStore(cfg.Storage.FilePath), nil, nil
	}
}
