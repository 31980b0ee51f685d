package repository

import (
	"context"

	"github.com/osm2svg/internal/domain"
)

// ContourRepository - источник контурных линий для охвата запроса
type ContourRepository interface {
	// GetContours возвращает линии в порядке их следования в источнике.
	// Отсутствие источника возвращается как errors.ErrNoGeometry.
	GetContours(ctx context.Context, req domain.RenderRequest) ([]domain.GeoContour, error)
}
