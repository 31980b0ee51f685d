package app

import (
	"fmt"

	"github.com/osm2svg/internal/config"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/infrastructure/srtm2osm"
	"github.com/osm2svg/internal/plot"
	"github.com/osm2svg/internal/repository/filestore"
	"github.com/osm2svg/internal/repository/osmfile"
	"github.com/osm2svg/internal/repository/postgresosm"
	"github.com/osm2svg/internal/usecase"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// RenderStack - собранный конвейер и открытые им подключения
type RenderStack struct {
	UseCase *usecase.RenderUseCase
	db      *postgresosm.DB
	logger  *zap.Logger
}

// Options переводит конфигурацию страницы и стиля в параметры конвейера
func Options(cfg *config.Config) usecase.RenderOptions {
	return usecase.RenderOptions{
		Page: plot.Page{
			Width:  cfg.Page.Width,
			Height: cfg.Page.Height,
			Margin: cfg.Page.Margin,
		},
		Style: plot.Style{
			StrokeWidth:          cfg.Style.StrokeWidth,
			MajorStrokeWidth:     cfg.Style.MajorStrokeWidth,
			DuplicateMajorStroke: cfg.Style.DuplicateMajorStroke,
		},
		CacheTTL: cfg.Cache.RenderTTL,
	}
}

// NewRenderStack собирает RenderUseCase по CONTOUR_SOURCE. cacheRepo может быть nil.
func NewRenderStack(
	cfg *config.Config,
	fs afero.Fs,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) (*RenderStack, error) {
	if err := fs.MkdirAll(cfg.Output.ResultDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create result dir %s: %w", cfg.Output.ResultDir, err)
	}

	stack := &RenderStack{logger: logger}

	var (
		terrainRepo repository.TerrainRepository
		contourRepo repository.ContourRepository
	)

	switch cfg.Terrain.Source {
	case config.SourceSrtm2Osm:
		terrainRepo = srtm2osm.NewClient(fs, &cfg.Terrain, &cfg.Output, logger)
		contourRepo = osmfile.NewContourRepository(fs, cfg.Output.ResultDir, logger)
	case config.SourceOSMFile:
		contourRepo = osmfile.NewContourRepository(fs, cfg.Output.ResultDir, logger)
	case config.SourcePostgres:
		db, err := postgresosm.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to contour database: %w", err)
		}

		stack.db = db
		contourRepo = postgresosm.NewContourRepository(db)
	default:
		return nil, fmt.Errorf("unknown contour source %q", cfg.Terrain.Source)
	}

	documentRepo := filestore.NewDocumentRepository(fs, cfg.Output.ResultDir, logger)

	stack.UseCase = usecase.NewRenderUseCase(
		terrainRepo,
		contourRepo,
		documentRepo,
		cacheRepo,
		Options(cfg),
		logger,
	)

	logger.Info("Render pipeline initialized",
		zap.String("source", cfg.Terrain.Source),
		zap.String("result_dir", cfg.Output.ResultDir),
		zap.Bool("cache", cacheRepo != nil),
	)

	return stack, nil
}

// Close закрывает подключения, открытые при сборке
func (s *RenderStack) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close contour database", zap.Error(err))
		return err
	}
	return nil
}
