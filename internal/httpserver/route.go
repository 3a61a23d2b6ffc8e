package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skotchmaster/storefront/internal/transport"
)

type Deps struct {
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	Gatherer       prometheus.Gatherer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if !d.CartHandler.Svc.Ready() {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.POST("/refresh", d.ProductHandler.RefreshProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)

	cart := e.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.Response{
		Status:  "error",
		Message: msg,
	})
}
