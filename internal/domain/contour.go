package domain

import "github.com/paulmach/orb"

// GeoContour - изолиния в геодезических координатах, как её отдаёт парсер.
// Порядок вершин задаёт путь инструмента плоттера и сохраняется на всех этапах.
type GeoContour struct {
	Altitude float64
	Points   []GeoPoint
}

// PlanarContour - изолиния в плоских координатах: метры после проекции,
// единицы страницы после вписывания. Каждый этап создаёт новый контур.
type PlanarContour struct {
	Altitude float64
	Line     orb.LineString
}

// Empty - контур без вершин
func (c PlanarContour) Empty() bool {
	return len(c.Line) == 0
}
