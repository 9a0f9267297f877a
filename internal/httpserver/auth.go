package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabian692/ecommerce/internal/logging"
	mwauth "github.com/fabian692/ecommerce/internal/middleware/auth"
	"github.com/fabian692/ecommerce/internal/models"
	"github.com/fabian692/ecommerce/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	result, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, l, err)
	}

	h.setTokenCookies(c, result)
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"is_admin":      result.User.Role == models.RoleAdmin,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	refreshToken := ""
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.Svc.Logout(ctx, refreshToken); err != nil {
		return respondError(c, l, err)
	}

	c.SetCookie(mwauth.DeleteCookie("accessToken", "/"))
	c.SetCookie(mwauth.DeleteCookie("refreshToken", "/"))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie("refreshToken")
	if err != nil {
		l.Warn("refresh_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "refresh token required"})
	}

	result, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		return respondError(c, l, err)
	}

	h.setTokenCookies(c, result)
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

func (h *AuthHTTP) setTokenCookies(c echo.Context, result *service.LoginResult) {
	c.SetCookie(mwauth.CreateCookie("accessToken", result.AccessToken, "/", result.AccessExp))
	c.SetCookie(mwauth.CreateCookie("refreshToken", result.RefreshToken, "/", result.RefreshExp))
}
