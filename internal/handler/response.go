package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadstorm/internal/dto"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse = dto.APIResponse

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, dto.SuccessResponse(message, data))
}

// Error sends a failure the form shows as an error dialog.
func Error(c echo.Context, status int, message string) error {
	return Dialog(c, status, dto.DialogError, message)
}

// Dialog sends a failure the form shows as a dialog of the given kind.
func Dialog(c echo.Context, status int, kind, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, dto.ErrorResponse(kind, message))
}
