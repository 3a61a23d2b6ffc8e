package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderProducts prints one product per line as "title  $price".
func RenderProducts(w io.Writer, products []models.Product, format string) error {
	if format == "json" {
		return writeJSON(w, transport.ProductsResponse{Products: products})
	}
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "no products")
		return err
	}
	for _, p := range products {
		if _, err := fmt.Fprintf(w, "%s  %s\n", p.Title, models.FormatPrice(p.Price)); err != nil {
			return err
		}
	}
	return nil
}

func RenderCart(w io.Writer, items []models.CartItem, format string) error {
	if format == "json" {
		return writeJSON(w, transport.CartResponse{Items: items})
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "%d  %s  %s\n", it.ID, it.Title, models.FormatPrice(it.Price)); err != nil {
			return err
		}
	}
	return nil
}
