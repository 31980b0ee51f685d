package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetDrawing получает чертёж из кеша
func (r *cacheRepository) GetDrawing(ctx context.Context, hash string) (*domain.CachedDrawing, error) {
	data, err := r.Get(ctx, RenderKey(hash))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var drawing domain.CachedDrawing
	if err := json.Unmarshal(data, &drawing); err != nil {
		r.logger.Error("Failed to unmarshal drawing from cache", zap.String("hash", hash), zap.Error(err))
		return nil, fmt.Errorf("unmarshal drawing: %w", err)
	}

	return &drawing, nil
}

// SetDrawing сохраняет чертёж в кеше
func (r *cacheRepository) SetDrawing(ctx context.Context, hash string, drawing *domain.CachedDrawing, ttl time.Duration) error {
	data, err := json.Marshal(drawing)
	if err != nil {
		r.logger.Error("Failed to marshal drawing", zap.Error(err))
		return fmt.Errorf("marshal drawing: %w", err)
	}

	return r.Set(ctx, RenderKey(hash), data, ttl)
}

// RenderKey - ключ кеша для хеша параметров чертежа
func RenderKey(hash string) string {
	return fmt.Sprintf("render:%s", hash)
}
