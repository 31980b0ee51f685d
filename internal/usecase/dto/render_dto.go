package dto

import "github.com/osm2svg/internal/domain"

// RenderResult - результат одного запуска конвейера
type RenderResult struct {
	Name      string          `json:"name"`
	DrawingID string          `json:"drawing_id"`
	Path      string          `json:"path,omitempty"`
	Content   []byte          `json:"-"`
	Paths     int             `json:"paths"`
	Altitudes int             `json:"altitudes"`
	Center    domain.GeoPoint `json:"center"`
	Scale     float64         `json:"scale"`
	Cached    bool            `json:"cached"`
}

// RenderResponse - сводка по чертежу без содержимого документа
type RenderResponse struct {
	Name      string          `json:"name"`
	DrawingID string          `json:"drawing_id"`
	Path      string          `json:"path,omitempty"`
	Paths     int             `json:"paths"`
	Altitudes int             `json:"altitudes"`
	Center    domain.GeoPoint `json:"center"`
	Scale     float64         `json:"scale"`
	Cached    bool            `json:"cached"`
}

// Response возвращает сводку результата
func (r *RenderResult) Response() RenderResponse {
	return RenderResponse{
		Name:      r.Name,
		DrawingID: r.DrawingID,
		Path:      r.Path,
		Paths:     r.Paths,
		Altitudes: r.Altitudes,
		Center:    r.Center,
		Scale:     r.Scale,
		Cached:    r.Cached,
	}
}
