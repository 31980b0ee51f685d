package domain

import "slices"

// Значения по умолчанию параметров запуска
const (
	DefaultStep         = 10
	BigLinesDisabled    = -1
	DrawingFileExt      = ".svg"
	ContourFileExt      = ".osm"
	AltitudeGroupPrefix = "alt_"
)

// RenderRequest - параметры одного запуска конвертации
type RenderRequest struct {
	Name         string  `json:"name" validate:"required,max=128,drawingname"`
	MinLat       float64 `json:"min_lat" validate:"min=-90,max=90"`
	MinLon       float64 `json:"min_lon" validate:"min=-180,max=180"`
	MaxLat       float64 `json:"max_lat" validate:"min=-90,max=90,gtefield=MinLat"`
	MaxLon       float64 `json:"max_lon" validate:"min=-180,max=180,gtefield=MinLon"`
	Step         float64 `json:"step" validate:"gt=0"`
	SortByHeight bool    `json:"sort_by_height"`
	BigLinesStep int     `json:"big_lines_step"`

	// Altitudes - если задан, рисуются только линии с этими высотами
	Altitudes []float64 `json:"altitudes,omitempty" validate:"omitempty,max=1000"`
}

// NewRenderRequest создаёт запрос с шагом по умолчанию и выключенными толстыми линиями
func NewRenderRequest(name string, bbox BoundingBox) RenderRequest {
	return RenderRequest{
		Name:         name,
		MinLat:       bbox.MinLat,
		MinLon:       bbox.MinLon,
		MaxLat:       bbox.MaxLat,
		MaxLon:       bbox.MaxLon,
		Step:         DefaultStep,
		BigLinesStep: BigLinesDisabled,
	}
}

// BoundingBox возвращает охват запроса
func (r RenderRequest) BoundingBox() BoundingBox {
	return BoundingBox{
		MinLat: r.MinLat,
		MinLon: r.MinLon,
		MaxLat: r.MaxLat,
		MaxLon: r.MaxLon,
	}
}

// WantsAltitude сообщает, проходит ли высота фильтр запроса
func (r RenderRequest) WantsAltitude(altitude float64) bool {
	if len(r.Altitudes) == 0 {
		return true
	}
	return slices.Contains(r.Altitudes, altitude)
}

// CachedDrawing - готовый чертёж со статистикой, как он хранится в кеше
type CachedDrawing struct {
	DrawingID string   `json:"drawing_id"`
	Content   []byte   `json:"content"`
	Paths     int      `json:"paths"`
	Altitudes int      `json:"altitudes"`
	Center    GeoPoint `json:"center"`
	Scale     float64  `json:"scale"`
}
