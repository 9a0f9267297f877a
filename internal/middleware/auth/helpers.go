package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fabian692/ecommerce/internal/service"
)

const sessionKey = "session"

func CreateCookie(name string, value string, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func setSession(c echo.Context, sess service.Session) {
	c.Set(sessionKey, sess)
}

func SessionFromContext(c echo.Context) (service.Session, bool) {
	sess, ok := c.Get(sessionKey).(service.Session)
	return sess, ok
}
