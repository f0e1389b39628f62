package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"quickcart/internal/product"
)

// Encode serializes items as a JSON object of id to quantity.
func Encode(items Items) (string, error) {
	if items == nil {
		items = Items{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode parses a snapshot written by Encode. An empty or null snapshot is
// an empty cart. Entries with an invalid id or a quantity that is not a
// positive integer are dropped.
func Decode(snapshot string) (Items, error) {
	snapshot = strings.TrimSpace(snapshot)
	if snapshot == "" || snapshot == "null" {
		return Items{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(snapshot), &raw); err != nil {
		return Items{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	return Sanitize(raw), nil
}

// Sanitize builds Items from loosely typed entries, keeping only valid ids
// with positive integer quantities.
func Sanitize(raw map[string]json.RawMessage) Items {
	items := make(Items, len(raw))
	for key, val := range raw {
		id, err := product.ParseID(key)
		if err != nil {
			continue
		}
		var qty int
		if err := json.Unmarshal(val, &qty); err != nil || qty <= 0 {
			continue
		}
		items[id] += qty
	}
	return items
}

// Normalize drops non-positive entries from items.
func Normalize(items Items) Items {
	out := make(Items, len(items))
	for id, qty := range items {
		if qty > 0 && id != "" {
			out[id] = qty
		}
	}
	return out
}
