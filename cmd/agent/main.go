package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Maximus-08/Assignment-solver/internal/adapters/cache"
	"github.com/Maximus-08/Assignment-solver/internal/adapters/database"
	"github.com/Maximus-08/Assignment-solver/internal/analysis"
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
	var once bool
	var userID string
	flag.BoolVar(&once, "once", false, "process pending assignments once and exit")
	flag.StringVar(&userID, "user", "", "restrict processing to a single user id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("assignment-agent", cfg.Agent.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build pipeline")
	}
	defer cleanup()

	if err := pipeline.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("pipeline initialization failed")
	}

	if once {
		if _, err := pipeline.ProcessPending(ctx, userID); err != nil {
			log.Fatal().Err(err).Msg("processing run failed")
		}
		return
	}

	// Guard against overlapping runs when a batch outlasts the schedule.
	var running sync.Mutex
	run := func() {
		if !running.TryLock() {
			log.Warn().Msg("previous run still in progress, skipping")
			return
		}
		defer running.Unlock()

		if _, err := pipeline.ProcessPending(ctx, userID); err != nil {
			log.Error().Err(err).Msg("scheduled run failed")
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Agent.SyncCron, run); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Agent.SyncCron).Msg("invalid sync schedule")
	}

	scheduler.Start()
	log.Info().Str("schedule", cfg.Agent.SyncCron).Msg("agent started")

	<-ctx.Done()
	log.Info().Msg("agent shutting down")

	// Let an in-flight run finish before exiting.
	<-scheduler.Stop().Done()
	log.Info().Msg("agent stopped")
}

// buildPipeline wires repositories, providers, and delivery into the
// pipeline service. The returned cleanup closes the underlying clients.
func buildPipeline(ctx context.Context, cfg *config.Config) (*services.PipelineService, func(), error) {
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}

	closers := []func(){func() { pgClient.Close() }}
	cleanup := func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}

	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without caching")
	} else {
		closers = append(closers, func() { redisClient.Close() })
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	baseAssignmentAdapter := database.NewAssignmentAdapter(pgClient)
	var assignmentRepo repositories.AssignmentRepository = baseAssignmentAdapter
	if cacheProvider != nil {
		assignmentRepo = database.NewCachedAssignmentAdapter(baseAssignmentAdapter, cacheProvider)
	}
	solutionRepo := database.NewSolutionAdapter(pgClient)

	analyzer := analysis.NewAnalyzer()

	var provs []providers.SolutionProvider
	if cfg.Gemini.APIKey != "" {
		gemini, err := generation.NewGeminiClient(&cfg.Gemini)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("gemini: %w", err)
		}
		provs = append(provs, gemini)
	}
	if cfg.Groq.APIKey != "" {
		groq, err := generation.NewGroqClient(&cfg.Groq, analyzer)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("groq: %w", err)
		}
		provs = append(provs, groq)
	}
	if len(provs) == 0 {
		cleanup()
		return nil, nil, fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY or GROQ_API_KEY")
	}

	health := generation.NewHealthRegistry()
	manager := generation.NewManager(health, cfg.Agent.ProviderPriority, log.Logger, provs...)

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

	return pipeline, cleanup, nil
}
