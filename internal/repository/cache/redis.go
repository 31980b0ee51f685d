package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/osm2svg/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	clientName     = "osm2svg"
	connectTimeout = 5 * time.Second
)

// Redis - общее подключение для кеша чертежей и стримов заданий
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedis подключается и проверяет соединение PING'ом
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  clientName,
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("Redis connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("db", cfg.DB),
	)

	return NewRedisForTest(client, logger), nil
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Client отдаёт клиент для репозитория стримов
func (r *Redis) Client() *redis.Client {
	return r.client
}

// NewRedisForTest оборачивает готовый клиент
func NewRedisForTest(client *redis.Client, logger *zap.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}
