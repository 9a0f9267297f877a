package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabian692/ecommerce/internal/service"
	"github.com/fabian692/ecommerce/internal/tokens"
)

// RequireLogin validates the access-token cookie and puts the resulting
// Session into the echo context for handlers downstream.
func RequireLogin(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie("accessToken")
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}

			claims, err := tokens.AccessClaimsFromToken(cookie.Value, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := tokens.SubjectToUserID(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setSession(c, service.Session{UserID: userID, Role: claims.Role})
			return next(c)
		}
	}
}
