package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/dago-hbs-render/internal/config"
	"github.com/aescanero/dago-hbs-render/internal/eval/template"
	"github.com/aescanero/dago-hbs-render/internal/worker"
)

// runWorker runs the Redis Streams render worker until ctx is cancelled
func runWorker(ctx context.Context, args []string, env map[string]string) error {
	if len(args) > 0 {
		return usagef("worker takes no arguments")
	}

	// Load configuration
	cfg, err := config.LoadFrom(env)
	if err != nil {
		return err
	}
	if err := cfg.ValidateWorker(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel, "stdout")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting render worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() {
		// Close Redis connection
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close redis connection", zap.Error(err))
		}
	}()

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Initialize engine
	engine := template.NewEngine(newRegistry(cfg),
		template.WithStrict(cfg.Strict),
		template.WithDevMode(cfg.DevMode),
		template.WithLogger(logger),
	)
	logger.Info("template engine initialized",
		zap.Bool("strict", cfg.Strict),
		zap.Bool("cel_enabled", cfg.CELEnabled),
	)

	// Initialize and start worker
	w := worker.NewWorker(cfg, redisClient, engine, logger)
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, engine, logger)
	if err := healthServer.Start(); err != nil {
		_ = w.Stop()
		return fmt.Errorf("failed to start health server: %w", err)
	}

	// Wait for shutdown signal
	logger.Info("render worker running, press Ctrl+C to stop")
	<-ctx.Done()

	logger.Info("shutdown signal received, stopping worker")

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	logger.Info("worker stopped gracefully")
	return nil
}
