package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := ErrInputMalformed.Wrapf("point %s not found", "42")

	assert.True(t, stderrors.Is(wrapped, ErrInputMalformed))
	assert.False(t, stderrors.Is(wrapped, ErrNoGeometry))

	outer := fmt.Errorf("load contours: %w", wrapped)
	assert.True(t, stderrors.Is(outer, ErrInputMalformed))

	var appErr *AppError
	assert.True(t, stderrors.As(outer, &appErr))
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	assert.Contains(t, appErr.Error(), "point 42 not found")
}

func TestAppError_WrapKeepsCause(t *testing.T) {
	err := ErrOutputWriteFailed.Wrap(io.ErrShortWrite)

	assert.True(t, stderrors.Is(err, io.ErrShortWrite))
	assert.Nil(t, ErrOutputWriteFailed.Unwrap(), "template must stay untouched")
}

func TestAppError_WithDetailsCopies(t *testing.T) {
	err := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "name"})

	assert.Equal(t, "name", err.Details["field"])
	assert.Empty(t, ErrInvalidRequest.Details)
}
