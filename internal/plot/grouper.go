package plot

import (
	"cmp"
	"math"
	"slices"

	"github.com/osm2svg/internal/domain"
	"go.uber.org/zap"
)

// StyledContour - контур с признаком основной (утолщённой) горизонтали
type StyledContour struct {
	domain.PlanarContour
	Major bool
}

// AltitudeGroup - контуры одной высоты в порядке разбора
type AltitudeGroup struct {
	Altitude float64
	Contours []StyledContour
}

// IsMajor - высота кратна интервалу основных горизонталей.
// interval <= 0 выключает выделение.
func IsMajor(altitude float64, interval int) bool {
	if interval <= 0 {
		return false
	}
	return math.Mod(altitude, float64(interval)) == 0
}

type ContourGrouper struct {
	logger *zap.Logger
}

func NewContourGrouper(logger *zap.Logger) *ContourGrouper {
	return &ContourGrouper{logger: logger}
}

// Group раскладывает непустые контуры по высотам. Группы идут по
// возрастанию высоты, внутри группы сохраняется исходный порядок, так что
// одинаковый вход всегда даёт одинаковый результат.
func (g *ContourGrouper) Group(contours []domain.PlanarContour, majorInterval int) []AltitudeGroup {
	index := make(map[float64]int)
	groups := make([]AltitudeGroup, 0)
	dropped := 0

	for _, c := range contours {
		if c.Empty() {
			dropped++
			continue
		}
		i, ok := index[c.Altitude]
		if !ok {
			i = len(groups)
			index[c.Altitude] = i
			groups = append(groups, AltitudeGroup{Altitude: c.Altitude})
		}
		groups[i].Contours = append(groups[i].Contours, StyledContour{
			PlanarContour: c,
			Major:         IsMajor(c.Altitude, majorInterval),
		})
	}

	slices.SortStableFunc(groups, func(a, b AltitudeGroup) int {
		return cmp.Compare(a.Altitude, b.Altitude)
	})

	g.logger.Debug("Contours grouped",
		zap.Int("groups", len(groups)),
		zap.Int("dropped_empty", dropped),
		zap.Int("major_interval", majorInterval))

	return groups
}
