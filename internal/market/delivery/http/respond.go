package http

import (
	"errors"
	"net/http"

	"golang-market-insight/internal/market/dto"

	"github.com/labstack/echo/v4"
)

// writeError maps service errors onto HTTP status codes: validation failures
// are client errors, unknown identifiers are 404, everything else (upstream
// and persistence failures) is a server error.
func writeError(c echo.Context, err error) error {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
	}
	if errors.Is(err, dto.ErrNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
}
