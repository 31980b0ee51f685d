package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osm2svg/internal/delivery/http/handler"
	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/osm2svg/internal/usecase/dto"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Build(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RenderResult), args.Error(1)
}

func (m *MockRenderer) Render(ctx context.Context, req domain.RenderRequest) (*dto.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RenderResult), args.Error(1)
}

func setupApp(r handler.Renderer) *fiber.App {
	h := handler.NewRenderHandler(r, zap.NewNop())
	app := fiber.New()
	app.Post("/api/v1/render", h.Render)
	app.Post("/api/v1/render/save", h.Save)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, string, map[string][]string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data), resp.Header
}

const renderBody = `{"name":"alps","min_lat":45,"min_lon":5,"max_lat":45.1,"max_lon":5.2,"sort_by_height":true}`

func TestRenderHandler_Render(t *testing.T) {
	renderer := &MockRenderer{}
	renderer.On("Build", mock.Anything, mock.MatchedBy(func(req domain.RenderRequest) bool {
		return req.Name == "alps" && req.MaxLon == 5.2 && req.SortByHeight &&
			req.Step == domain.DefaultStep && req.BigLinesStep == domain.BigLinesDisabled
	})).Return(&dto.RenderResult{
		Name:      "alps",
		DrawingID: "drawing-1",
		Content:   []byte("<svg/>"),
		Paths:     4,
	}, nil)

	status, body, header := postJSON(t, setupApp(renderer), "/api/v1/render", renderBody)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "<svg/>", body)
	assert.Equal(t, handler.SVGContentType, header["Content-Type"][0])
	assert.Equal(t, "drawing-1", header["X-Drawing-Id"][0])
	assert.Equal(t, "4", header["X-Drawing-Paths"][0])
	renderer.AssertExpectations(t)
}

func TestRenderHandler_RenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no geometry", errors.ErrNoGeometry, fiber.StatusUnprocessableEntity, "NO_GEOMETRY"},
		{"degenerate", errors.ErrDegenerateGeometry.Wrapf("zero width"), fiber.StatusUnprocessableEntity, "DEGENERATE_GEOMETRY"},
		{"terrain", errors.ErrTerrainUnavailable, fiber.StatusBadGateway, "TERRAIN_UNAVAILABLE"},
		{"validation", errors.ErrInvalidRequest, fiber.StatusBadRequest, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &MockRenderer{}
			renderer.On("Build", mock.Anything, mock.Anything).Return(nil, tt.err)

			status, body, _ := postJSON(t, setupApp(renderer), "/api/v1/render", renderBody)

			assert.Equal(t, tt.status, status)
			assert.Contains(t, body, tt.code)
		})
	}
}

func TestRenderHandler_BadBody(t *testing.T) {
	renderer := &MockRenderer{}

	status, body, _ := postJSON(t, setupApp(renderer), "/api/v1/render", `{"name":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "INVALID_REQUEST")
	renderer.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
}

func TestRenderHandler_Save(t *testing.T) {
	renderer := &MockRenderer{}
	renderer.On("Render", mock.Anything, mock.Anything).Return(&dto.RenderResult{
		Name:      "alps",
		DrawingID: "drawing-1",
		Path:      "result/alps.svg",
		Content:   []byte("<svg/>"),
		Paths:     4,
		Altitudes: 2,
	}, nil)

	status, body, _ := postJSON(t, setupApp(renderer), "/api/v1/render/save", renderBody)
	require.Equal(t, fiber.StatusCreated, status)

	var parsed struct {
		Data dto.RenderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Equal(t, "result/alps.svg", parsed.Data.Path)
	assert.Equal(t, 2, parsed.Data.Altitudes)
	assert.NotContains(t, body, "<svg/>")
}
