package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"wtPoster/internal/ai"
	"wtPoster/internal/api"
	"wtPoster/internal/config"
	"wtPoster/internal/editor"
	"wtPoster/internal/session"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	registry := editor.NewRegistry(cfg.Session.TTL)

	sessions, err := session.NewService(cfg.Session.SigningSecret, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("init session service: %v", err)
	}

	redisAddr := cfg.Redis.Addr()
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("close asynq client failed", slog.Any("error", err))
		}
	}()

	geminiClient, err := ai.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.RatePerMin)
	if err != nil {
		log.Fatalf("init gemini client: %v", err)
	}

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, cfg, registry, sessions, geminiClient, asynqClient, redisClient, logger)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
