package plot

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var a4 = Page{Width: 210, Height: 297, Margin: 5}

func planar(alt float64, pts ...orb.Point) domain.PlanarContour {
	return domain.PlanarContour{Altitude: alt, Line: orb.LineString(pts)}
}

func TestPageFitter_Fit(t *testing.T) {
	f := NewPageFitter(a4, zap.NewNop())

	input := []domain.PlanarContour{
		planar(100, orb.Point{-50, -20}, orb.Point{50, 30}),
		planar(110),
		planar(120, orb.Point{0, 0}),
	}

	out, fit, err := f.Fit(input)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, 2.0, fit.Scale) // 200 / 100
	assert.Equal(t, orb.Point{-50, -20}, fit.Bound.Min)
	assert.Equal(t, orb.Point{50, 30}, fit.Bound.Max)

	assert.Equal(t, orb.Point{5, 292}, out[0].Line[0])
	assert.Equal(t, orb.Point{205, 192}, out[0].Line[1])
	assert.True(t, out[1].Empty())
	assert.Equal(t, 110.0, out[1].Altitude)
	assert.Equal(t, orb.Point{105, 252}, out[2].Line[0])

	assert.Equal(t, orb.Point{-50, -20}, input[0].Line[0], "input must not be mutated")
}

func TestPageFitter_ScaleInvariance(t *testing.T) {
	f := NewPageFitter(a4, zap.NewNop())

	input := []domain.PlanarContour{
		planar(1, orb.Point{-1234.5, 88.1}, orb.Point{-17.25, 4012.9}, orb.Point{901.3, -77.7}),
		planar(2, orb.Point{3310.4, 1500.2}, orb.Point{12.5, -903.4}),
	}

	out, fit, err := f.Fit(input)
	require.NoError(t, err)

	var src, dst []orb.Point
	for i := range input {
		src = append(src, input[i].Line...)
		dst = append(dst, out[i].Line...)
	}

	for i := range src {
		for j := i + 1; j < len(src); j++ {
			meters := math.Hypot(src[i].X()-src[j].X(), src[i].Y()-src[j].Y())
			page := math.Hypot(dst[i].X()-dst[j].X(), dst[i].Y()-dst[j].Y())
			assert.InDelta(t, fit.Scale, page/meters, 1e-9, "pair %d-%d", i, j)
		}
	}
}

func TestPageFitter_VerticalFlip(t *testing.T) {
	f := NewPageFitter(a4, zap.NewNop())

	out, _, err := f.Fit([]domain.PlanarContour{
		planar(1, orb.Point{0, 0}, orb.Point{10, 500}, orb.Point{20, 250}),
	})
	require.NoError(t, err)

	line := out[0].Line
	assert.Less(t, line[1].Y(), line[2].Y(), "north is up-page")
	assert.Less(t, line[2].Y(), line[0].Y())
	assert.Equal(t, 292.0, line[0].Y(), "southernmost point sits on the bottom margin")
}

func TestPageFitter_DegenerateGeometry(t *testing.T) {
	f := NewPageFitter(a4, zap.NewNop())

	tests := []struct {
		name  string
		input []domain.PlanarContour
	}{
		{"single point", []domain.PlanarContour{planar(1, orb.Point{3, 4})}},
		{"vertical line", []domain.PlanarContour{
			planar(1, orb.Point{3, 4}, orb.Point{3, 40}),
			planar(2, orb.Point{3, -10}),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := f.Fit(tt.input)

			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrDegenerateGeometry))
			assert.Nil(t, out)
		})
	}
}

func TestPageFitter_NoVertices(t *testing.T) {
	f := NewPageFitter(a4, zap.NewNop())

	_, _, err := f.Fit([]domain.PlanarContour{planar(1), planar(2)})

	assert.True(t, stderrors.Is(err, errors.ErrNoGeometry))
}

func TestBounds(t *testing.T) {
	_, ok := Bounds(nil)
	assert.False(t, ok)

	b, ok := Bounds([]domain.PlanarContour{
		planar(1),
		planar(2, orb.Point{1, 7}),
		planar(3, orb.Point{-2, 3}, orb.Point{4, 5}),
	})
	assert.True(t, ok)
	assert.Equal(t, orb.Point{-2, 3}, b.Min)
	assert.Equal(t, orb.Point{4, 7}, b.Max)
}
