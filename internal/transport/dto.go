package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProductsResponse struct {
	Products []models.Product `json:"products"`
	Error    string           `json:"error,omitempty"`
}

type SearchResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}

// AddToCartRequest either names a product from the current catalog by
// ProductID or carries the product fields directly.
type AddToCartRequest struct {
	ProductID   *int            `json:"product_id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

func (r AddToCartRequest) Product() models.Product {
	return models.Product{
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
	}
}

type AddToCartResponse struct {
	Message string          `json:"message"`
	Item    models.CartItem `json:"item"`
}

type CartResponse struct {
	Items []models.CartItem `json:"items"`
}
