package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartHTTP struct {
	Svc     *service.CartService
	Catalog *service.CatalogService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	var product models.Product
	if req.ProductID != nil {
		if _, err := h.Catalog.EnsureLoaded(ctx); err != nil {
			l.Warn("add_to_cart_error", "status", 502, "error", err)
			return errorResponse(c, http.StatusBadGateway, catalogUnavailable)
		}
		p, ok := h.Catalog.Find(*req.ProductID)
		if !ok {
			l.Warn("add_to_cart_error", "status", 404, "product_id", *req.ProductID)
			return errorResponse(c, http.StatusNotFound, "product not found in catalog")
		}
		product = p
	} else {
		product = req.Product()
	}

	item, err := h.Svc.Add(ctx, product)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return errorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrNotReady):
			return errorResponse(c, http.StatusServiceUnavailable, "cart is not ready")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return errorResponse(c, http.StatusInternalServerError, "could not add item to cart")
		}
	}

	return c.JSON(http.StatusCreated, transport.AddToCartResponse{
		Message: service.AddedMessage,
		Item:    item,
	})
}

// GetCart never reports a failed read as an empty cart.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_cart_error", "status", 503, "error", err)
		return errorResponse(c, http.StatusServiceUnavailable, "cart unavailable")
	}

	return c.JSON(http.StatusOK, transport.CartResponse{Items: items})
}
