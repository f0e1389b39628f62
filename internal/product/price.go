package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a display price such as "$3,899.99" or "799.99" into
// a decimal. Leading currency symbols and thousands separators are ignored.
func ParsePrice(display string) (decimal.Decimal, error) {
	s := strings.TrimSpace(display)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '-' && r != '.'
	})
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, display)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, display)
	}
	return d, nil
}

func mustParsePrice(display string) decimal.Decimal {
	d, err := ParsePrice(display)
	if err != nil {
		panic(err)
	}
	return d
}
