package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the remote catalog API. Fields
// the API sends beyond these five are ignored.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// CartItem is one persisted line of the cart. ID is assigned by the store.
type CartItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"type:text"                json:"title"`
	Price       decimal.Decimal `gorm:"type:real"                json:"price"`
	Description string          `gorm:"type:text"                json:"description"`
	Image       string          `gorm:"type:text"                json:"image"`
}

func (CartItem) TableName() string {
	return "cart"
}

// NewCartItem copies the content fields of p. The catalog id is dropped.
func NewCartItem(p Product) CartItem {
	return CartItem{
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
	}
}

// FormatPrice renders a price the way the product and cart screens show it.
func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}
