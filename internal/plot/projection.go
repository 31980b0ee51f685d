package plot

import (
	"math"

	"github.com/osm2svg/internal/domain"
)

// EarthRadius - радиус сферы проекции, метры (большая полуось WGS84)
const EarthRadius = 6378137.0

// Projection - прямое и обратное преобразование проекции. Реализацию можно
// заменить, не трогая Projector.
type Projection interface {
	Forward(lat, lon float64) (x, y float64)
	Inverse(x, y float64) (lat, lon float64)
}

// ProjectionFactory создаёт проекцию с заданным центром
type ProjectionFactory func(center domain.GeoPoint) Projection

// azimuthalEquidistant - сферическая азимутальная равнопромежуточная проекция.
// Расстояния от центра сохраняются точно, искажения растут к краям охвата.
// Для охвата в десятки километров это ожидаемое свойство, а не ошибка.
type azimuthalEquidistant struct {
	lat0, lon0       float64 // радианы
	sinLat0, cosLat0 float64
	radius           float64
}

// NewAzimuthalEquidistant создаёт проекцию с центром в center
func NewAzimuthalEquidistant(center domain.GeoPoint) Projection {
	lat0 := rad(center.Lat)
	sinLat0, cosLat0 := math.Sincos(lat0)
	return &azimuthalEquidistant{
		lat0:    lat0,
		lon0:    rad(center.Lon),
		sinLat0: sinLat0,
		cosLat0: cosLat0,
		radius:  EarthRadius,
	}
}

func (p *azimuthalEquidistant) Forward(lat, lon float64) (x, y float64) {
	phi := rad(lat)
	dLam := rad(lon) - p.lon0

	sinPhi, cosPhi := math.Sincos(phi)
	sinDLam, cosDLam := math.Sincos(dLam)

	// угловое расстояние через гаверсинус: acos теряет точность у центра
	sinHalfDPhi := math.Sin((phi - p.lat0) / 2)
	sinHalfDLam := math.Sin(dLam / 2)
	h := sinHalfDPhi*sinHalfDPhi + p.cosLat0*cosPhi*sinHalfDLam*sinHalfDLam
	c := 2 * math.Asin(math.Sqrt(math.Min(1, h)))
	if c == 0 {
		return 0, 0
	}

	k := c / math.Sin(c)
	x = p.radius * k * cosPhi * sinDLam
	y = p.radius * k * (p.cosLat0*sinPhi - p.sinLat0*cosPhi*cosDLam)
	return x, y
}

func (p *azimuthalEquidistant) Inverse(x, y float64) (lat, lon float64) {
	rho := math.Hypot(x, y)
	if rho == 0 {
		return deg(p.lat0), deg(p.lon0)
	}

	c := rho / p.radius
	sinC, cosC := math.Sincos(c)

	phi := math.Asin(math.Max(-1, math.Min(1, cosC*p.sinLat0+y*sinC*p.cosLat0/rho)))
	lam := p.lon0 + math.Atan2(x*sinC, rho*p.cosLat0*cosC-y*p.sinLat0*sinC)

	return deg(phi), normalizeLon(deg(lam))
}

func rad(d float64) float64 { return d * math.Pi / 180.0 }
func deg(r float64) float64 { return r * 180.0 / math.Pi }

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
