package usecase

import (
	"context"
	"crypto/md5"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/osm2svg/internal/pkg/metrics"
	"github.com/osm2svg/internal/pkg/validator"
	"github.com/osm2svg/internal/plot"
	"github.com/osm2svg/internal/usecase/dto"
	"go.uber.org/zap"
)

// RenderOptions - параметры страницы и стиля, общие для всех запусков
type RenderOptions struct {
	Page     plot.Page
	Style    plot.Style
	CacheTTL time.Duration
}

type RenderUseCase struct {
	terrainRepo  repository.TerrainRepository
	contourRepo  repository.ContourRepository
	documentRepo repository.DocumentRepository
	cacheRepo    repository.CacheRepository
	projector    *plot.Projector
	fitter       *plot.PageFitter
	grouper      *plot.ContourGrouper
	writer       *plot.VectorWriter
	opts         RenderOptions
	logger       *zap.Logger
}

// NewRenderUseCase собирает конвейер. terrainRepo и cacheRepo могут быть nil:
// тогда шаг генерации изолиний и кеш пропускаются.
func NewRenderUseCase(
	terrainRepo repository.TerrainRepository,
	contourRepo repository.ContourRepository,
	documentRepo repository.DocumentRepository,
	cacheRepo repository.CacheRepository,
	opts RenderOptions,
	logger *zap.Logger,
) *RenderUseCase {
	return &RenderUseCase{
		terrainRepo:  terrainRepo,
		contourRepo:  contourRepo,
		documentRepo: documentRepo,
		cacheRepo:    cacheRepo,
		projector:    plot.NewProjector(nil, logger),
		fitter:       plot.NewPageFitter(opts.Page, logger),
		grouper:      plot.NewContourGrouper(logger),
		writer:       plot.NewVectorWriter(opts.Style, logger),
		opts:         opts,
		logger:       logger,
	}
}

// Build прогоняет конвейер и возвращает документ в памяти, ничего не сохраняя
func (uc *RenderUseCase) Build(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error) {
	started := time.Now()

	result, err := uc.build(ctx, req)
	switch {
	case err == nil && result.Cached:
		metrics.ObserveRender(metrics.StatusCached, started, result.Paths)
	case err == nil:
		metrics.ObserveRender(metrics.StatusOK, started, result.Paths)
	case stderrors.Is(err, errors.ErrNoGeometry):
		metrics.ObserveRender(metrics.StatusNoGeometry, started, 0)
	default:
		metrics.ObserveRender(metrics.StatusError, started, 0)
	}

	return result, err
}

// Render строит чертёж и сохраняет его одним вызовом. При любой ошибке
// файл не создаётся.
func (uc *RenderUseCase) Render(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error) {
	result, err := uc.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	path, err := uc.documentRepo.Save(ctx, req.Name, result.Content)
	if err != nil {
		uc.logger.Error("Failed to save drawing", zap.String("name", req.Name), zap.Error(err))
		return nil, asAppError(err, errors.ErrOutputWriteFailed)
	}
	result.Path = path

	uc.logger.Info("Drawing rendered",
		zap.String("name", result.Name),
		zap.String("path", path),
		zap.Int("paths", result.Paths),
		zap.Int("altitudes", result.Altitudes),
		zap.Bool("cached", result.Cached),
	)

	return result, nil
}

func (uc *RenderUseCase) build(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	key := uc.cacheKey(req)
	if cached := uc.fromCache(ctx, key, req.Name); cached != nil {
		return cached, nil
	}

	if uc.terrainRepo != nil {
		if _, err := uc.terrainRepo.Acquire(ctx, req); err != nil {
			uc.logger.Error("Terrain acquisition failed", zap.String("name", req.Name), zap.Error(err))
			return nil, asAppError(err, errors.ErrTerrainUnavailable)
		}
	}

	contours, err := uc.contourRepo.GetContours(ctx, req)
	if err != nil {
		return nil, asAppError(err, errors.ErrInternalServer)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrInternalServer.Wrap(err)
	}

	bbox := req.BoundingBox()
	projected := uc.projector.Project(contours, bbox)
	if projected.Empty() {
		return nil, errors.ErrNoGeometry.Wrapf("no contours for %s", req.Name)
	}

	fitted, fit, err := uc.fitter.Fit(projected.Contours)
	if err != nil {
		return nil, err
	}

	groups := uc.grouper.Group(fitted, req.BigLinesStep)
	drawing := uc.writer.Write(groups, plot.Document{
		Name:            req.Name,
		Width:           uc.opts.Page.Width,
		Height:          uc.opts.Page.Height,
		GroupByAltitude: req.SortByHeight,
	})

	result := &dto.RenderResult{
		Name:      req.Name,
		DrawingID: drawing.ID,
		Content:   drawing.Content,
		Paths:     drawing.Paths,
		Altitudes: len(groups),
		Center:    projected.Center,
		Scale:     fit.Scale,
	}

	uc.toCache(ctx, key, result)
	return result, nil
}

// cacheKey - md5 канонического вида запроса вместе с параметрами страницы и стиля
func (uc *RenderUseCase) cacheKey(req domain.RenderRequest) string {
	params := fmt.Sprintf("%s|%.9f|%.9f|%.9f|%.9f|%g|%t|%d|%v|%+v|%+v",
		req.Name, req.MinLat, req.MinLon, req.MaxLat, req.MaxLon,
		req.Step, req.SortByHeight, req.BigLinesStep, req.Altitudes,
		uc.opts.Page, uc.opts.Style)
	return fmt.Sprintf("%x", md5.Sum([]byte(params)))
}

func (uc *RenderUseCase) fromCache(ctx context.Context, key, name string) *dto.RenderResult {
	if uc.cacheRepo == nil {
		return nil
	}

	cached, err := uc.cacheRepo.GetDrawing(ctx, key)
	if err != nil {
		uc.logger.Warn("Failed to read drawing cache", zap.String("key", key), zap.Error(err))
		return nil
	}
	if cached == nil {
		return nil
	}

	uc.logger.Debug("Drawing served from cache", zap.String("name", name))
	return &dto.RenderResult{
		Name:      name,
		DrawingID: cached.DrawingID,
		Content:   cached.Content,
		Paths:     cached.Paths,
		Altitudes: cached.Altitudes,
		Center:    cached.Center,
		Scale:     cached.Scale,
		Cached:    true,
	}
}

func (uc *RenderUseCase) toCache(ctx context.Context, key string, result *dto.RenderResult) {
	if uc.cacheRepo == nil {
		return
	}

	err := uc.cacheRepo.SetDrawing(ctx, key, &domain.CachedDrawing{
		DrawingID: result.DrawingID,
		Content:   result.Content,
		Paths:     result.Paths,
		Altitudes: result.Altitudes,
		Center:    result.Center,
		Scale:     result.Scale,
	}, uc.opts.CacheTTL)
	if err != nil {
		uc.logger.Warn("Failed to cache drawing", zap.String("key", key), zap.Error(err))
	}
}

// asAppError оставляет AppError как есть, остальные ошибки оборачивает в fallback
func asAppError(err error, fallback *errors.AppError) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return fallback.Wrap(err)
}
