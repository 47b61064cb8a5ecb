package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/dto"
	"github.com/octobees/leadstorm/internal/middleware"
	"github.com/octobees/leadstorm/internal/service"
)

// RunService starts runs and reports on the current one.
type RunService interface {
	Start(audience string) (dto.RunStatus, error)
	Current() dto.RunStatus
}

// RunHandler exposes the run endpoints polled by the form.
type RunHandler struct {
	runs RunService
	log  zerolog.Logger
}

// NewRunHandler creates a new handler instance.
func NewRunHandler(runs RunService, log zerolog.Logger) *RunHandler {
	return &RunHandler{runs: runs, log: log}
}

// Start handles POST /runs requests.
func (h *RunHandler) Start(c echo.Context) error {
	var req dto.StartRunRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request body")
	}

	status, err := h.runs.Start(req.Audience)
	switch {
	case errors.Is(err, service.ErrAudienceRequired):
		return Error(c, http.StatusBadRequest, service.MsgAudienceRequired)
	case errors.Is(err, service.ErrRunInProgress):
		return Dialog(c, http.StatusConflict, dto.DialogWarning, "A run is already in progress. Wait for it to finish.")
	case err != nil:
		h.log.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(c)).Msg("start run")
		return Error(c, http.StatusInternalServerError, service.MsgCrashed)
	}

	h.log.Info().
		Str("request_id", middleware.RequestIDFromContext(c)).
		Str("run_id", status.RunID).
		Str("audience", status.Audience).
		Msg("run started")
	return Success(c, http.StatusAccepted, "run started", status)
}

// Current handles GET /runs/current requests.
func (h *RunHandler) Current(c echo.Context) error {
	return Success(c, http.StatusOK, "run status", h.runs.Current())
}
