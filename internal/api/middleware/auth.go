package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

// Auth verifies the token in the Authorization header and injects the caller
// id into context. The header carries the raw token; a "Bearer " prefix is
// accepted too.
func Auth(tokens ports.TokenIssuer, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return domain.ErrUnauthenticated
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return domain.ErrUnauthenticated
			}

			c.Set(UserIDKey, identity.UserID)
			return next(c)
		}
	}
}

// UserID returns the caller id stored by Auth, or "" outside the gate.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
