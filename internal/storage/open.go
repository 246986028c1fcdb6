package storage

import (
	"context"
	"fmt"
	"time"

	"story-relay/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open выбирает бэкенд по STORAGE_BACKEND. Возвращаемая функция закрывает соединения.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		return openRedis(ctx, cfg, logger)
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StorageFile, "":
		logger.Info("Using file storage", zap.String("data_dir", cfg.DataDir))
		return NewFileBackend(cfg.DataDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func openRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("Using redis storage", zap.String("addr", cfg.RedisAddr), zap.String("prefix", cfg.RedisKeyPrefix))
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error closing redis client", zap.Error(err))
		}
	}
	return NewRedisBackend(client, cfg.RedisKeyPrefix), closeFn, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Backend, func(), error) {
	if err := ApplyMigrations(cfg.DatabaseURL); err != nil {
		return nil, nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	logger.Info("Using postgres storage")
	return NewPostgresBackend(pool, logger), pool.Close, nil
}
