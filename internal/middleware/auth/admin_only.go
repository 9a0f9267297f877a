package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabian692/ecommerce/internal/models"
)

// AdminOnly must run after RequireLogin.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			if sess.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return next(c)
		}
	}
}
