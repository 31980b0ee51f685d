package errors

import (
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`

	cause error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает исходную ошибку, если она была обёрнута через Wrap
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал с копиями из Wrap/WithDetails
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с деталями; шаблоны из codes.go не изменяются
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap возвращает копию ошибки с причиной
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.cause = cause
	return &cp
}

// Wrapf - Wrap с форматированной причиной
func (e *AppError) Wrapf(format string, args ...interface{}) *AppError {
	return e.Wrap(fmt.Errorf(format, args...))
}
