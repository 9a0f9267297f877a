package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabian692/ecommerce/internal/logging"
	mwauth "github.com/fabian692/ecommerce/internal/middleware/auth"
	"github.com/fabian692/ecommerce/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	sess, ok := mwauth.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	view, err := h.Svc.GetCart(ctx, sess)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	sess, ok := mwauth.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	item, err := h.Svc.AddToCart(ctx, sess, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	sess, ok := mwauth.SessionFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFromCart(ctx, sess, id); err != nil {
		return respondError(c, l, err)
	}

	return c.NoContent(http.StatusNoContent)
}
