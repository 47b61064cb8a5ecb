package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadstorm/internal/auth"
	"github.com/octobees/leadstorm/internal/dto"
)

// Messages returned when the session token is absent or rejected.
const (
	MsgSessionMissing = "Session token missing. Open the link printed at start-up."
	MsgSessionInvalid = "Session expired or invalid. Restart LeadStorm and use the new link."
)

// Session validates the session token and stores its subject in the request
// context. The token is read from a bearer header or, for the page the
// browser opens first, from the token query parameter.
func Session(manager *auth.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := tokenFromRequest(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse(dto.DialogError, MsgSessionMissing))
			}

			claims, err := manager.ParseToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse(dto.DialogError, MsgSessionInvalid))
			}

			c.Set(ContextKeySubject, claims.Subject)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) (string, bool) {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := c.QueryParam("token"); token != "" {
		return token, true
	}
	return "", false
}
