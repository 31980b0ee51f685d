package repository

import (
	"context"

	"github.com/osm2svg/internal/domain"
)

// TerrainRepository - получение контуров из внешнего генератора рельефа
type TerrainRepository interface {
	// Acquire генерирует файл с контурами и возвращает путь к нему
	Acquire(ctx context.Context, req domain.RenderRequest) (string, error)
}
