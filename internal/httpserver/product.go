package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

const catalogUnavailable = "catalog unavailable"

type ProductHTTP struct {
	Svc *service.CatalogService
}

// GetProducts serves the last-known list, loading it on first use. A failed
// load still answers 200 with whatever list is current.
func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.EnsureLoaded(ctx)
	resp := transport.ProductsResponse{Products: products}
	if err != nil {
		l.Warn("get_products_degraded", "reason", catalogUnavailable, "error", err)
		resp.Error = catalogUnavailable
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHTTP) RefreshProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.refresh")

	products, err := h.Svc.Refresh(ctx)
	if err != nil {
		l.Error("refresh_products_error", "status", 502, "error", err)
		return c.JSON(http.StatusBadGateway, transport.ProductsResponse{
			Products: products,
			Error:    catalogUnavailable,
		})
	}

	l.Info("refresh_products_success", "count", len(products))
	return c.JSON(http.StatusOK, transport.ProductsResponse{Products: products})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "query parameter q is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	total, products, err := h.Svc.Search(ctx, q, page, size)
	if err != nil {
		if errors.Is(err, service.ErrSearchUnavailable) {
			return errorResponse(c, http.StatusServiceUnavailable, "search is not configured")
		}
		l.Error("search_products_error", "status", 500, "error", err)
		return errorResponse(c, http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: products})
}
