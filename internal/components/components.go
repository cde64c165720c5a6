package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sosAlert/internal/api"
	"sosAlert/internal/config"
	"sosAlert/internal/notify"
	"sosAlert/internal/redis"
	"sosAlert/internal/service"
	"sosAlert/internal/storage/postgres"
	"sosAlert/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	var (
		redisClient *redis.Redis
		cache       service.ContactCache
	)
	if cfg.Redis.Addr != "" {
		logger.Info("Initializing Redis")
		redisClient, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			storage.Pool.Close()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		cache = redis.NewContactCache(redisClient)
	} else {
		logger.Info("REDIS_ADDR empty, contact cache disabled")
	}

	var push notify.PushSender
	if fcm := initFCM(ctx, cfg, logger); fcm != nil {
		push = fcm
	}

	var sms notify.SMSSender
	if cfg.Twilio.Enabled() {
		sms = notify.NewTwilioClient(cfg.Twilio.BaseURL, cfg.Twilio.SID, cfg.Twilio.Token, cfg.Twilio.From, logger)
		logger.Info("SMS channel enabled", slog.String("from", cfg.Twilio.From))
	} else {
		logger.Warn("TW_SID/TW_TOKEN not set, SMS channel disabled")
	}

	dispatcher := notify.NewDispatcher(logger, push, sms,
		notify.WithWorkers(cfg.Notify.Workers),
		notify.WithAttemptTimeout(cfg.Notify.AttemptTimeout),
	)
	resolver := service.NewContactResolver(storage.Users(), cache, cfg.Redis.TTL, logger)
	sosSvc := service.NewSOSService(storage.Incidents(), resolver, dispatcher, logger, time.Now)

	srv := service.NewService(sosSvc)

	httpServer := api.NewServer(ctx, cfg, logger, srv)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
	}, nil
}

// initFCM returns nil when no usable service account is available. Pushes
// to contacts with a token then fail at send time.
func initFCM(ctx context.Context, cfg *config.Config, logger *slog.Logger) *notify.FCMClient {
	raw := []byte(cfg.Firebase.ServiceAccountJSON)
	if len(raw) == 0 {
		b, err := os.ReadFile(cfg.Firebase.ServiceAccountFile)
		if err != nil {
			logger.Warn("Firebase service account not found, push disabled",
				slog.String("file", cfg.Firebase.ServiceAccountFile),
				slog.Any("error", err),
			)
			return nil
		}
		raw = b
	}

	client, err := notify.NewFCMClientFromCredentials(ctx, cfg.Firebase.BaseURL, raw, logger)
	if err != nil {
		logger.Warn("Firebase init failed, push disabled", slog.Any("error", err))
		return nil
	}
	logger.Info("Push channel enabled")
	return client
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
