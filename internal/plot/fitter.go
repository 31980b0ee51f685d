package plot

import (
	"math"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Page - размеры страницы и поле, в единицах страницы
type Page struct {
	Width  float64
	Height float64
	Margin float64
}

// Fit - параметры вписывания: охват в метрах и масштаб
type Fit struct {
	Bound orb.Bound
	Scale float64
}

// PageFitter переводит контуры из метров в координаты страницы.
// Масштаб задаёт только ширина охвата: пропорции сохраняются, и чертёж
// может оказаться выше или ниже страницы.
type PageFitter struct {
	page   Page
	logger *zap.Logger
}

func NewPageFitter(page Page, logger *zap.Logger) *PageFitter {
	return &PageFitter{
		page:   page,
		logger: logger,
	}
}

// Bounds возвращает охват всех вершин, пустые контуры пропускаются.
// ok == false, если вершин нет вовсе.
func Bounds(contours []domain.PlanarContour) (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)
	for _, c := range contours {
		if c.Empty() {
			continue
		}
		if !found {
			bound = c.Line.Bound()
			found = true
			continue
		}
		bound = bound.Union(c.Line.Bound())
	}
	return bound, found
}

// Fit вписывает контуры в страницу. Ось y переворачивается: на странице
// она растёт вниз, север оказывается сверху.
func (f *PageFitter) Fit(contours []domain.PlanarContour) ([]domain.PlanarContour, Fit, error) {
	bound, ok := Bounds(contours)
	if !ok {
		return nil, Fit{}, errors.ErrNoGeometry.Wrapf("no vertices in %d contours", len(contours))
	}

	width := bound.Max.X() - bound.Min.X()
	if width == 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, Fit{}, errors.ErrDegenerateGeometry.Wrapf(
			"bounding box x range [%f, %f] has no width", bound.Min.X(), bound.Max.X())
	}

	scale := (f.page.Width - 2*f.page.Margin) / width
	minX, minY := bound.Min.X(), bound.Min.Y()
	top := f.page.Height - f.page.Margin

	out := make([]domain.PlanarContour, len(contours))
	for i, c := range contours {
		line := make(orb.LineString, len(c.Line))
		for j, p := range c.Line {
			line[j] = orb.Point{
				f.page.Margin + (p.X()-minX)*scale,
				top - (p.Y()-minY)*scale,
			}
		}
		out[i] = domain.PlanarContour{Altitude: c.Altitude, Line: line}
	}

	f.logger.Debug("Contours fitted to page",
		zap.Float64("scale", scale),
		zap.Float64("width_m", width),
		zap.Float64("height_m", bound.Max.Y()-minY))

	return out, Fit{Bound: bound, Scale: scale}, nil
}
