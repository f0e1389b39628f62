package cart

import (
	"quickcart/internal/product"

	"github.com/shopspring/decimal"
)

// Items maps a product to its quantity. Every entry has quantity >= 1.
type Items map[product.ID]int

func (it Items) Clone() Items {
	out := make(Items, len(it))
	for id, qty := range it {
		out[id] = qty
	}
	return out
}

// Line is one cart entry resolved against the catalog.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
