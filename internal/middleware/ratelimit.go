package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/leadstorm/internal/config"
	"github.com/octobees/leadstorm/internal/dto"
)

// MsgRunRateLimited is returned when runs are started too quickly.
const MsgRunRateLimited = "Too many runs started. Wait a minute and try again."

// RunRateLimiter applies a token bucket limiter to requests that start runs.
// Read-only requests pass through untouched.
func RunRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodPost {
				return next(c)
			}
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, dto.ErrorResponse(dto.DialogWarning, MsgRunRateLimited))
			}
			return next(c)
		}
	}
}
