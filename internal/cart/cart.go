package cart

import (
	"fmt"
	"sort"

	"quickcart/internal/product"

	"github.com/shopspring/decimal"
)

// Add returns a copy of items with the quantity for id incremented by one.
func Add(items Items, id product.ID) Items {
	out := items.Clone()
	out[id]++
	return out
}

// SetQuantity returns a copy of items with id set to quantity. A zero
// quantity removes the entry; a negative one is rejected.
func SetQuantity(items Items, id product.ID, quantity int) (Items, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	out := items.Clone()
	if quantity == 0 {
		delete(out, id)
	} else {
		out[id] = quantity
	}
	return out, nil
}

func Count(items Items) int {
	total := 0
	for _, qty := range items {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

// Amount sums quantity * price for every entry found in catalog, floored to
// the cent. Entries without a catalog match are skipped.
func Amount(items Items, catalog []product.Product) decimal.Decimal {
	prices := priceIndex(catalog)

	total := decimal.Zero
	for id, qty := range items {
		price, ok := prices[id]
		if !ok || qty <= 0 {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.RoundFloor(2)
}

// Lines resolves items against catalog in catalog order. Unmatched entries
// are left out.
func Lines(items Items, catalog []product.Product) []Line {
	lines := make([]Line, 0, len(items))
	seen := make(map[product.ID]bool, len(items))

	for _, p := range catalog {
		qty, ok := items[p.ID]
		if !ok || qty <= 0 || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		lines = append(lines, Line{
			Product:  p,
			Quantity: qty,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return lines
}

// Unmatched lists the ids in items that are absent from catalog, sorted.
func Unmatched(items Items, catalog []product.Product) []product.ID {
	prices := priceIndex(catalog)

	ids := []product.ID{}
	for id := range items {
		if _, ok := prices[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// priceIndex keeps the first price seen for a duplicated id.
func priceIndex(catalog []product.Product) map[product.ID]decimal.Decimal {
	prices := make(map[product.ID]decimal.Decimal, len(catalog))
	for _, p := range catalog {
		if _, dup := prices[p.ID]; !dup {
			prices[p.ID] = p.Price
		}
	}
	return prices
}
