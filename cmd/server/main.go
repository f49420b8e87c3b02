package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/henryli127-lang/volca/internal/config"
	"github.com/henryli127-lang/volca/internal/database"
	"github.com/henryli127-lang/volca/internal/dict"
	"github.com/henryli127-lang/volca/internal/llm"
	"github.com/henryli127-lang/volca/internal/logging"
	"github.com/henryli127-lang/volca/internal/redis"
	"github.com/henryli127-lang/volca/internal/scheduler"
	"github.com/henryli127-lang/volca/internal/server"
	"github.com/henryli127-lang/volca/internal/study"
	"github.com/henryli127-lang/volca/internal/tts"
	"github.com/henryli127-lang/volca/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, jobs *scheduler.Scheduler, stopEviction func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if jobs != nil {
			jobs.Stop()
		}
		stopEviction()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "build", version.Get().String())

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	// Repositories
	profileRepo := database.NewProfileRepo(pool)
	wordRepo := database.NewWordRepo(pool)
	progressRepo := database.NewProgressRepo(pool)
	studyLogRepo := database.NewStudyLogRepo(pool)
	statsRepo := database.NewStatsRepo(pool)
	articleRepo := database.NewArticleRepo(pool)

	// Caches
	audioCache := redis.NewAudioCache(redisClient, cfg.AudioCacheTTL)
	sharedLookupCache := redis.NewLookupCache(redisClient, cfg.LookupCacheTTL)
	memoryCache := dict.NewEntryCache(10*time.Minute, clock)
	stopEviction := memoryCache.StartEvictionTimer(time.Minute)

	// Providers
	providerHTTP := &http.Client{Timeout: cfg.ProviderTimeout}

	dictionary := dict.NewClient(cfg.DictBaseURL, providerHTTP)
	translator := dict.NewRacingTranslator(cfg.TranslateBaseURL, cfg.TranslateAltURL, providerHTTP)
	lookup := dict.NewService(dictionary, translator, memoryCache, sharedLookupCache, wordRepo, cfg.TranslateTarget)

	speechClient := tts.NewClient(cfg.SpeechWSEndpoint, cfg.SpeechToken)
	speechFallback := tts.NewFallbackClient(cfg.SpeechFallbackURL, providerHTTP)
	synthesizer := tts.NewService(speechClient, speechFallback, audioCache, cfg.SpeechDefaultVoice)

	generator, err := llm.NewClient(context.Background(), cfg.GenAIKey, cfg.GenAITextModel, cfg.GenAIImageModel)
	if err != nil {
		slog.Error("Failed to create generation client", "error", err)
		os.Exit(1)
	}

	studyService := study.NewService(progressRepo, studyLogRepo, statsRepo, clock)

	// Background aggregation
	var jobs *scheduler.Scheduler
	if cfg.AggregationEnabled {
		jobs = scheduler.New(studyLogRepo, statsRepo, clock)
		if err := jobs.Start(); err != nil {
			slog.Error("Failed to start scheduler", "error", err)
			os.Exit(1)
		}
	}

	healthChecks := []server.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	srv := server.NewServer(cfg, server.Deps{
		Profiles:     profileRepo,
		Words:        wordRepo,
		Articles:     articleRepo,
		Lookup:       lookup,
		Translator:   translator,
		Synthesizer:  synthesizer,
		Generator:    generator,
		Study:        studyService,
		Clock:        clock,
		HealthChecks: healthChecks,
	})

	done := runGracefulShutdown(srv, jobs, stopEviction)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
