package middleware

import (
	"net/http"
	"strings"

	"defiant-meals-backend/internal/service"

	"github.com/labstack/echo/v4"
)

// AdminAuth guards admin routes with a stateless signed bearer token.
func AdminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided, access denied")
			}

			if err := authService.ValidateToken(token); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			return next(c)
		}
	}
}
