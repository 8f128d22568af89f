package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Felipeysz/teste/internal/errors"
)

const bearerPrefix = "Bearer "

// requireAuth verifies the Authorization bearer token and stores the decoded
// subject and role in the request context. Verification alone does not prove
// the session is still active; that only matters for login, which goes
// through the registry.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return apperrors.UnauthorizedError("missing bearer token")
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		claims, err := s.codec.DecodeAndVerify(token)
		if err != nil {
			return apperrors.UnauthorizedError("invalid or expired token")
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		return next(c)
	}
}
