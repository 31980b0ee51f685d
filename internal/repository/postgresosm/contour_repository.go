package postgresosm

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	pkgerrors "github.com/osm2svg/internal/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"go.uber.org/zap"
)

type contourRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewContourRepository создает репозиторий изолиний для OSM базы данных
func NewContourRepository(db *DB) repository.ContourRepository {
	return &contourRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetContours возвращает изолинии, пересекающие охват запроса, в порядке osm_id
func (r *contourRepository) GetContours(ctx context.Context, req domain.RenderRequest) ([]domain.GeoContour, error) {
	query, args := buildContourQuery(req)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to get contours", zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError.Wrap(err)
	}
	defer rows.Close()

	var contours []domain.GeoContour
	for rows.Next() {
		var osmID int64
		var altitude float64
		scanner := wkb.Scanner(nil)

		if err := rows.Scan(&osmID, &altitude, scanner); err != nil {
			r.logger.Error("failed to scan contour row", zap.Error(err))
			continue
		}
		if !scanner.Valid {
			continue
		}

		contours = append(contours, toContours(altitude, scanner.Geometry)...)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("contour rows iteration failed", zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError.Wrap(err)
	}

	if len(contours) == 0 {
		return nil, pkgerrors.ErrNoGeometry.Wrapf("no contour lines in %.6f,%.6f %.6f,%.6f",
			req.MinLat, req.MinLon, req.MaxLat, req.MaxLon)
	}

	r.logger.Info("Contours loaded from database", zap.Int("contours", len(contours)))
	return contours, nil
}

func buildContourQuery(req domain.RenderRequest) (string, []interface{}) {
	query := fmt.Sprintf(`
		SELECT
			osm_id,
			%s AS altitude,
			ST_AsBinary(ST_Transform(way, %d)) AS geom
		FROM %s
		WHERE %s
		  AND %s IS NOT NULL
		  AND way && ST_Transform(ST_MakeEnvelope($1, $2, $3, $4, %d), %d)`,
		numericEleExpr, SRID4326, planetLineTable, contourFilterExpr, numericEleExpr, SRID4326, SRID3857)

	args := []interface{}{req.MinLon, req.MinLat, req.MaxLon, req.MaxLat}

	if len(req.Altitudes) > 0 {
		query += fmt.Sprintf(" AND %s = ANY($5)", numericEleExpr)
		args = append(args, pq.Array(req.Altitudes))
	}

	query += fmt.Sprintf(" ORDER BY osm_id LIMIT %d", LimitContours)
	return query, args
}

// toContours раскладывает геометрию строки в изолинии; точки orb хранятся как [lon, lat]
func toContours(altitude float64, g orb.Geometry) []domain.GeoContour {
	switch geom := g.(type) {
	case orb.LineString:
		return []domain.GeoContour{lineToContour(altitude, geom)}
	case orb.MultiLineString:
		out := make([]domain.GeoContour, 0, len(geom))
		for _, ls := range geom {
			out = append(out, lineToContour(altitude, ls))
		}
		return out
	default:
		return nil
	}
}

func lineToContour(altitude float64, ls orb.LineString) domain.GeoContour {
	points := make([]domain.GeoPoint, 0, len(ls))
	for _, p := range ls {
		points = append(points, domain.GeoPoint{Lat: p.Lat(), Lon: p.Lon()})
	}
	return domain.GeoContour{Altitude: altitude, Points: points}
}
