package plot

import (
	"github.com/osm2svg/internal/domain"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Projected - результат проекции: центр запуска и контуры в метрах.
// Пустой результат означает "нечего рисовать" и не является ошибкой.
type Projected struct {
	Center   domain.GeoPoint
	Contours []domain.PlanarContour
}

// Empty сообщает, что входных контуров не было
func (p Projected) Empty() bool {
	return len(p.Contours) == 0
}

// Projector переводит контуры из геодезических координат в метры
// относительно единого для запуска центра проекции
type Projector struct {
	newProjection ProjectionFactory
	logger        *zap.Logger
}

// NewProjector создаёт Projector. При factory == nil используется
// азимутальная равнопромежуточная проекция.
func NewProjector(factory ProjectionFactory, logger *zap.Logger) *Projector {
	if factory == nil {
		factory = NewAzimuthalEquidistant
	}
	return &Projector{
		newProjection: factory,
		logger:        logger,
	}
}

// Center вычисляет центр проекции: середину охвата, измеренную в проекции
// с центром в юго-западном углу, а не среднее градусов.
func (p *Projector) Center(bbox domain.BoundingBox) domain.GeoPoint {
	corner := p.newProjection(bbox.Min())

	x1, y1 := corner.Forward(bbox.MinLat, bbox.MinLon)
	x2, y2 := corner.Forward(bbox.MaxLat, bbox.MaxLon)

	lat, lon := corner.Inverse((x1+x2)/2, (y1+y2)/2)
	return domain.GeoPoint{Lat: lat, Lon: lon}
}

// Project проецирует все вершины всех контуров. Порядок вершин и высоты
// сохраняются, пустые контуры остаются пустыми.
func (p *Projector) Project(contours []domain.GeoContour, bbox domain.BoundingBox) Projected {
	if len(contours) == 0 {
		p.logger.Debug("Nothing to project")
		return Projected{}
	}

	center := p.Center(bbox)
	proj := p.newProjection(center)

	out := make([]domain.PlanarContour, len(contours))
	vertices := 0
	for i, c := range contours {
		line := make(orb.LineString, len(c.Points))
		for j, pt := range c.Points {
			x, y := proj.Forward(pt.Lat, pt.Lon)
			line[j] = orb.Point{x, y}
		}
		out[i] = domain.PlanarContour{Altitude: c.Altitude, Line: line}
		vertices += len(c.Points)
	}

	p.logger.Debug("Contours projected",
		zap.Float64("center_lat", center.Lat),
		zap.Float64("center_lon", center.Lon),
		zap.Int("contours", len(out)),
		zap.Int("vertices", vertices))

	return Projected{Center: center, Contours: out}
}
