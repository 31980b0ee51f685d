package domain

// GeoPoint - точка в геодезических координатах (градусы)
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox - геодезический охват запроса
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Min возвращает юго-западный угол
func (b BoundingBox) Min() GeoPoint {
	return GeoPoint{Lat: b.MinLat, Lon: b.MinLon}
}

// Max возвращает северо-восточный угол
func (b BoundingBox) Max() GeoPoint {
	return GeoPoint{Lat: b.MaxLat, Lon: b.MaxLon}
}
