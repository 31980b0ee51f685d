package errors

import "net/http"

var (
	ErrNoGeometry = New(
		"NO_GEOMETRY",
		"No contour geometry to draw",
		http.StatusUnprocessableEntity,
	)

	ErrInputMalformed = New(
		"INPUT_MALFORMED",
		"Contour input is malformed",
		http.StatusUnprocessableEntity,
	)

	ErrDegenerateGeometry = New(
		"DEGENERATE_GEOMETRY",
		"Projected geometry has zero width",
		http.StatusUnprocessableEntity,
	)

	ErrOutputWriteFailed = New(
		"OUTPUT_WRITE_FAILED",
		"Failed to write output document",
		http.StatusInternalServerError,
	)

	ErrTerrainUnavailable = New(
		"TERRAIN_UNAVAILABLE",
		"Terrain contour data could not be acquired",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
