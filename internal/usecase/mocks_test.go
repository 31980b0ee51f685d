package usecase_test

import (
	"context"
	"time"

	"github.com/osm2svg/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTerrainRepository struct {
	mock.Mock
}

func (m *MockTerrainRepository) Acquire(ctx context.Context, req domain.RenderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockContourRepository struct {
	mock.Mock
}

func (m *MockContourRepository) GetContours(ctx context.Context, req domain.RenderRequest) ([]domain.GeoContour, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeoContour), args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Save(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) Path(name string) string {
	return "result/" + name + domain.DrawingFileExt
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetDrawing(ctx context.Context, hash string) (*domain.CachedDrawing, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CachedDrawing), args.Error(1)
}

func (m *MockCacheRepository) SetDrawing(ctx context.Context, hash string, drawing *domain.CachedDrawing, ttl time.Duration) error {
	return m.Called(ctx, hash, drawing, ttl).Error(0)
}
