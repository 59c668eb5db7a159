package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authpkg "github.com/munch-hunt/api/internal/auth"
)

// Session validates bearer session tokens and stores the session ID in the
// request context.
func Session(manager *authpkg.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}

			subject, err := manager.ParseToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			sessionID, err := uuid.Parse(subject)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(ContextKeySessionID, sessionID)
			return next(c)
		}
	}
}

// SessionIDFromContext extracts the authenticated session ID if available.
func SessionIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeySessionID).(uuid.UUID)
	return id, ok
}
