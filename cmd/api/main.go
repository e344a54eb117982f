package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Maximus-08/Assignment-solver/internal/adapters/cache"
	"github.com/Maximus-08/Assignment-solver/internal/adapters/database"
	"github.com/Maximus-08/Assignment-solver/internal/analysis"
	"github.com/Maximus-08/Assignment-solver/internal/api/handlers"
	"github.com/Maximus-08/Assignment-solver/internal/api/middleware"
	"github.com/Maximus-08/Assignment-solver/internal/api/routes"
	"github.com/Maximus-08/Assignment-solver/internal/application/services"
	"github.com/Maximus-08/Assignment-solver/internal/delivery"
	"github.com/Maximus-08/Assignment-solver/internal/domain/providers"
	"github.com/Maximus-08/Assignment-solver/internal/domain/repositories"
	"github.com/Maximus-08/Assignment-solver/internal/generation"
	"github.com/Maximus-08/Assignment-solver/internal/infrastructure/clients/postgres"
	"github.com/Maximus-08/Assignment-solver/internal/infrastructure/clients/redis"
	"github.com/Maximus-08/Assignment-solver/internal/infrastructure/observability"
	"github.com/Maximus-08/Assignment-solver/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("assignment-api", cfg.Agent.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without caching")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize adapters, wrapping with caching when Redis is available
	baseAssignmentAdapter := database.NewAssignmentAdapter(pgClient)
	var assignmentRepo repositories.AssignmentRepository = baseAssignmentAdapter
	if cacheProvider != nil {
		assignmentRepo = database.NewCachedAssignmentAdapter(baseAssignmentAdapter, cacheProvider)
	}
	solutionRepo := database.NewSolutionAdapter(pgClient)

	// Initialize handlers
	assignmentHandler := handlers.NewAssignmentHandler(assignmentRepo, solutionRepo)
	providerHandler := buildProviderHandler(ctx, cfg, assignmentRepo, solutionRepo)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	// Set up router
	router := routes.NewRouter(
		assignmentHandler,
		providerHandler,
		cacheMiddleware,
		cfg.Server.APIKey,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

// buildProviderHandler wires the generation pipeline behind the provider
// endpoints when at least one LLM provider is configured. Without API keys
// the endpoints are simply not registered.
func buildProviderHandler(
	ctx context.Context,
	cfg *config.Config,
	assignmentRepo repositories.AssignmentRepository,
	solutionRepo repositories.SolutionRepository,
) *handlers.ProviderHandler {
	analyzer := analysis.NewAnalyzer()

	var provs []providers.SolutionProvider
	if cfg.Gemini.APIKey != "" {
		gemini, err := generation.NewGeminiClient(&cfg.Gemini)
		if err != nil {
			log.Warn().Err(err).Msg("failed to construct gemini client")
		} else {
			provs = append(provs, gemini)
		}
	}
	if cfg.Groq.APIKey != "" {
		groq, err := generation.NewGroqClient(&cfg.Groq, analyzer)
		if err != nil {
			log.Warn().Err(err).Msg("failed to construct groq client")
		} else {
			provs = append(provs, groq)
		}
	}
	if len(provs) == 0 {
		log.Warn().Msg("no LLM provider configured, pipeline endpoints disabled")
		return nil
	}

	health := generation.NewHealthRegistry()
	manager := generation.NewManager(health, cfg.Agent.ProviderPriority, log.Logger, provs...)
	if err := manager.Initialize(ctx); err != nil {
		log.Warn().Err(err).Msg("provider initialization failed, pipeline endpoints disabled")
		return nil
	}

	deliveryClient := delivery.NewHTTPClient(cfg.Backend.URL, cfg.Backend.APIKey, log.Logger)
	deliverer := delivery.NewDeliverer(deliveryClient, log.Logger)

	pipeline := services.NewPipelineService(
		analyzer,
		manager,
		deliverer,
		deliveryClient,
		assignmentRepo,
		solutionRepo,
		cfg.Agent.ForceProvider,
		log.Logger,
	)

	return handlers.NewProviderHandler(pipeline)
}
