package repository

import (
	"context"
	"time"

	"github.com/osm2svg/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetDrawing получает чертёж по хешу параметров, nil при промахе
	GetDrawing(ctx context.Context, hash string) (*domain.CachedDrawing, error)

	// SetDrawing сохраняет чертёж в кеше
	SetDrawing(ctx context.Context, hash string, drawing *domain.CachedDrawing, ttl time.Duration) error
}
