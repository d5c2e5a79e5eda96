package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"leados.app/inbox/common/id"
	"leados.app/inbox/common/llm"
	"leados.app/inbox/common/logger"
	"leados.app/inbox/common/otel"
	"leados.app/inbox/core/config"
	"leados.app/inbox/core/db"
	"leados.app/inbox/internal/queue"
	"leados.app/inbox/internal/store"
	"leados.app/inbox/internal/summary"
	"leados.app/inbox/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "summary worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Pipeline.RedisGroup,
		"consumer_name", cfg.Pipeline.RedisConsumer)

	// Node 2 so ids never collide with the API server.
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Pipeline.RedisStream,
		Group:        cfg.Pipeline.RedisGroup,
		Consumer:     cfg.Pipeline.RedisConsumer,
		DLQStream:    cfg.Pipeline.RedisDLQStream,
		BatchSize:    4,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Pipeline.MaxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	llmClient, err := llm.New(llm.Config{
		APIKey:  cfg.SummaryLLM.APIKey,
		BaseURL: cfg.SummaryLLM.BaseURL,
		Model:   cfg.SummaryLLM.Model,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())
	processor := worker.NewSummaryProcessor(
		stores.Conversations(),
		stores.Messages(),
		stores.Summaries(),
		summary.New(llmClient, cfg.SummaryLLM.MaxTokens),
	)

	w := worker.New(consumer, processor.Process, worker.Config{
		MaxAttempts: cfg.Pipeline.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Pipeline.RedisStream,
		Group:     cfg.Pipeline.RedisGroup,
		Consumer:  cfg.Pipeline.RedisConsumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  time.Minute,
		BatchSize: 10,
	}, consumer, w)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error { return reclaimer.Run(gctx) })
	g.Go(func() error {
		select {
		case <-sigCtx.Done():
			slog.InfoContext(ctx, "shutting down worker...")
		case <-gctx.Done():
		}
		// Reclaimer first; the worker may be mid-summary.
		reclaimer.Stop()
		w.Stop()
		return nil
	})

	slog.InfoContext(ctx, "worker initialized and running", "model", llmClient.Model())

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var runErr error
	select {
	case runErr = <-done:
	case <-sigCtx.Done():
		select {
		case runErr = <-done:
		case <-time.After(30 * time.Second):
			slog.WarnContext(ctx, "shutdown timeout exceeded")
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.ErrorContext(ctx, "worker error", "error", runErr)
	}

	if telemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 _     _____    _    ____   ___  ____   __        _____  ____  _  _______ ____
| |   | ____|  / \  |  _ \ / _ \/ ___|  \ \      / / _ \|  _ \| |/ / ____|  _ \
| |   |  _|   / _ \ | | | | | | \___ \   \ \ /\ / / | | | |_) | ' /|  _| | |_) |
| |___| |___ / ___ \| |_| | |_| |___) |   \ V  V /| |_| |  _ <| . \| |___|  _ <
|_____|_____/_/   \_\____/ \___/|____/     \_/\_/  \___/|_| \_\_|\_\_____|_| \_\
`
