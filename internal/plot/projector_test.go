package plot

import (
	"testing"

	"github.com/osm2svg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testBBox = domain.BoundingBox{MinLat: 45.0, MinLon: 5.0, MaxLat: 45.1, MaxLon: 5.2}

// recordingProjection records the centers it was created with
type recordingProjection struct {
	center domain.GeoPoint
}

func (p *recordingProjection) Forward(lat, lon float64) (float64, float64) {
	return lon - p.center.Lon, lat - p.center.Lat
}

func (p *recordingProjection) Inverse(x, y float64) (float64, float64) {
	return y + p.center.Lat, x + p.center.Lon
}

func TestProjector_Center(t *testing.T) {
	p := NewProjector(nil, zap.NewNop())

	center := p.Center(testBBox)

	assert.Greater(t, center.Lat, testBBox.MinLat)
	assert.Less(t, center.Lat, testBBox.MaxLat)
	assert.Greater(t, center.Lon, testBBox.MinLon)
	assert.Less(t, center.Lon, testBBox.MaxLon)
	// the projected midpoint is close to the degree average but not equal to it
	assert.InDelta(t, 45.05, center.Lat, 1e-3)
	assert.InDelta(t, 5.1, center.Lon, 1e-3)

	// the center survives a forward/inverse round trip
	corner := NewAzimuthalEquidistant(testBBox.Min())
	x, y := corner.Forward(center.Lat, center.Lon)
	lat, lon := corner.Inverse(x, y)
	assert.InDelta(t, center.Lat, lat, degTolerance)
	assert.InDelta(t, center.Lon, lon, degTolerance)
}

func TestProjector_CenterUsesProjectionFactory(t *testing.T) {
	var centers []domain.GeoPoint
	factory := func(center domain.GeoPoint) Projection {
		centers = append(centers, center)
		return &recordingProjection{center: center}
	}
	p := NewProjector(factory, zap.NewNop())

	projected := p.Project([]domain.GeoContour{
		{Altitude: 10, Points: []domain.GeoPoint{{Lat: 45.05, Lon: 5.1}}},
	}, testBBox)

	require.Len(t, centers, 2, "one projection for the corner, one for the run")
	assert.Equal(t, testBBox.Min(), centers[0])
	assert.InDelta(t, 45.05, centers[1].Lat, 1e-12)
	assert.InDelta(t, 5.1, centers[1].Lon, 1e-12)
	assert.Equal(t, centers[1], projected.Center)
}

func TestProjector_EmptyInput(t *testing.T) {
	p := NewProjector(nil, zap.NewNop())

	projected := p.Project(nil, testBBox)

	assert.True(t, projected.Empty())
	assert.Empty(t, projected.Contours)
}

func TestProjector_PreservesOrderAndAltitude(t *testing.T) {
	input := []domain.GeoContour{
		{Altitude: 120, Points: []domain.GeoPoint{
			{Lat: 45.01, Lon: 5.01}, {Lat: 45.02, Lon: 5.03}, {Lat: 45.00, Lon: 5.05},
		}},
		{Altitude: 0},
		{Altitude: 130, Points: []domain.GeoPoint{{Lat: 45.09, Lon: 5.19}}},
	}
	snapshot := input[0].Points[1]

	p := NewProjector(nil, zap.NewNop())
	projected := p.Project(input, testBBox)

	require.Len(t, projected.Contours, 3)
	assert.False(t, projected.Empty())

	assert.Equal(t, 120.0, projected.Contours[0].Altitude)
	assert.Len(t, projected.Contours[0].Line, 3)
	assert.True(t, projected.Contours[1].Empty(), "empty contour stays in place")
	assert.Equal(t, 130.0, projected.Contours[2].Altitude)

	// the third vertex is east of the second, the second is north of the third
	line := projected.Contours[0].Line
	assert.Greater(t, line[2].X(), line[1].X())
	assert.Greater(t, line[1].Y(), line[2].Y())

	assert.Equal(t, snapshot, input[0].Points[1], "input must not be mutated")
}
