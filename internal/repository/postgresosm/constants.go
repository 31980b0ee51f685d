package postgresosm

const (
	SRID4326 = 4326
	SRID3857 = 3857

	// LimitContours - верхняя граница числа линий за один запрос
	LimitContours = 50000
)

const (
	planetLineTable = "planet_osm_line"
)

// expressions для повторного использования в SQL
const (
	// numericEleExpr - высота как число; нечисловые значения ele дают NULL
	numericEleExpr = `CASE WHEN ele ~ '^\s*-?[0-9]+(\.[0-9]+)?\s*$' THEN trim(ele)::float8 END`

	// contourFilterExpr - линии, импортированные из изолиний (Srtm2Osm/phyghtmap ставят contour=elevation)
	contourFilterExpr = `(tags->'contour' = 'elevation' OR ele IS NOT NULL)`
)
