package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadstorm/internal/auth"
	"github.com/octobees/leadstorm/internal/config"
	"github.com/octobees/leadstorm/internal/handler"
	middlewarepkg "github.com/octobees/leadstorm/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Form *handler.FormHandler
	Runs *handler.RunHandler
}

// Register wires all HTTP routes for the form server.
func Register(e *echo.Echo, cfg *config.Config, sessions *auth.SessionManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	secured := e.Group("")
	secured.Use(middlewarepkg.Session(sessions))

	secured.GET("/", handlers.Form.Show)
	secured.POST("/runs", handlers.Runs.Start, middlewarepkg.RunRateLimiter(cfg.RateLimitRuns))
	secured.GET("/runs/current", handlers.Runs.Current)
}
