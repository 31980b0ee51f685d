package validator

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/osm2svg/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required,drawingname"`
	Count int    `validate:"gte=1"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(sample{Name: "valley-north_2", Count: 1}))
}

func TestValidate_MapsFieldErrors(t *testing.T) {
	err := Validate(sample{Name: "a/b", Count: 0})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "INVALID_REQUEST", appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "drawingname", appErr.Details["Name"])
	assert.Equal(t, "gte", appErr.Details["Count"])
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate(42)

	assert.True(t, stderrors.Is(err, errors.ErrInvalidRequest))
}

func TestDrawingName(t *testing.T) {
	v := GetValidator()

	for _, name := range []string{"alps", "Mont.Blanc", "zone_12-b"} {
		assert.NoError(t, v.Var(name, "drawingname"), name)
	}
	for _, name := range []string{"", ".", "..", "a b", `a\b`, "a/b", "<svg>", `"q"`, "a&b"} {
		assert.Error(t, v.Var(name, "drawingname"), name)
	}
}
