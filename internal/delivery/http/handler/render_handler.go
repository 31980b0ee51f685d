package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/osm2svg/internal/pkg/utils"
	"github.com/osm2svg/internal/usecase/dto"
	"go.uber.org/zap"
)

// SVGContentType - тип содержимого отдаваемого чертежа
const SVGContentType = "image/svg+xml; charset=utf-8"

// Renderer - то, что нужно обработчику от RenderUseCase
type Renderer interface {
	Build(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error)
	Render(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error)
}

// RenderHandler обрабатывает запросы на построение чертежей
type RenderHandler struct {
	renderUC Renderer
	logger   *zap.Logger
}

// NewRenderHandler создает новый экземпляр RenderHandler
func NewRenderHandler(renderUC Renderer, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{
		renderUC: renderUC,
		logger:   logger,
	}
}

// Render godoc
// @Summary Render contour drawing
// @Description Строит чертёж изолиний для охвата и возвращает SVG документ
// @Tags Render
// @Accept json
// @Produce image/svg+xml
// @Param request body domain.RenderRequest true "Параметры чертежа"
// @Success 200 {string} string "SVG документ"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/render [post]
func (h *RenderHandler) Render(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.renderUC.Build(c.Context(), req)
	if err != nil {
		h.logger.Warn("Failed to render drawing", zap.String("name", req.Name), zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, SVGContentType)
	c.Set("X-Drawing-Id", result.DrawingID)
	c.Set("X-Drawing-Paths", strconv.Itoa(result.Paths))
	c.Set("X-Drawing-Cached", strconv.FormatBool(result.Cached))
	return c.Send(result.Content)
}

// Save godoc
// @Summary Render and store contour drawing
// @Description Строит чертёж и сохраняет его в каталог результатов сервера
// @Tags Render
// @Accept json
// @Produce json
// @Param request body domain.RenderRequest true "Параметры чертежа"
// @Success 201 {object} utils.SuccessResponse{data=dto.RenderResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/render/save [post]
func (h *RenderHandler) Save(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.renderUC.Render(c.Context(), req)
	if err != nil {
		h.logger.Warn("Failed to render and save drawing", zap.String("name", req.Name), zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, result.Response(), nil)
}

// parseRequest разбирает тело поверх значений по умолчанию, поэтому
// отсутствующие step и big_lines_step получают значения CLI
func (h *RenderHandler) parseRequest(c *fiber.Ctx) (domain.RenderRequest, error) {
	req := domain.NewRenderRequest("", domain.BoundingBox{})
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid render request body", zap.Error(err))
		return req, errors.ErrInvalidRequest.Wrap(err)
	}
	return req, nil
}
