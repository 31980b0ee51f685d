package osmfile

import (
	"context"
	"fmt"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/infrastructure/osmxml"
	"github.com/osm2svg/internal/infrastructure/srtm2osm"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type contourRepository struct {
	fs        afero.Fs
	resultDir string
	parser    *osmxml.Parser
	logger    *zap.Logger
}

// NewContourRepository создаёт репозиторий, читающий <resultDir>/<name>.osm
func NewContourRepository(fs afero.Fs, resultDir string, logger *zap.Logger) repository.ContourRepository {
	return &contourRepository{
		fs:        fs,
		resultDir: resultDir,
		parser:    osmxml.NewParser(logger),
		logger:    logger,
	}
}

func (r *contourRepository) GetContours(ctx context.Context, req domain.RenderRequest) ([]domain.GeoContour, error) {
	path := srtm2osm.OutputPath(r.resultDir, req.Name)

	f, err := r.fs.Open(path)
	if err != nil {
		r.logger.Warn("Contour file not found", zap.String("path", path), zap.Error(err))
		return nil, errors.ErrNoGeometry.Wrap(fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	doc, err := r.parser.Parse(f)
	if err != nil {
		r.logger.Error("Failed to parse contour file", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	contours := doc.Contours
	if len(req.Altitudes) > 0 {
		contours = make([]domain.GeoContour, 0, len(doc.Contours))
		for _, c := range doc.Contours {
			if req.WantsAltitude(c.Altitude) {
				contours = append(contours, c)
			}
		}
	}

	r.logger.Info("Contours loaded",
		zap.String("path", path),
		zap.Int("contours", len(contours)),
		zap.Int("parsed", len(doc.Contours)),
	)

	return contours, nil
}
