package product

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const maxIDLength = 64

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ID identifies a product. Values are only produced by ParseID or by
// decoding a validated catalog record.
type ID string

func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxIDLength || !idPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProductID, s)
	}
	return ID(s), nil
}

func (id ID) String() string {
	return string(id)
}

type Product struct {
	ID          ID              `json:"id" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// wireProduct accepts the field spellings used by the storefront catalog
// endpoint alongside the canonical ones.
type wireProduct struct {
	ID          json.RawMessage `json:"id"`
	LegacyID    json.RawMessage `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	Price       json.RawMessage `json:"price"`
	OfferPrice  json.RawMessage `json:"offerPrice"`
	ImageURL    string          `json:"image_url"`
	Image       string          `json:"image"`
	ImgSrc      string          `json:"imgSrc"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var w wireProduct
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	rawID := w.ID
	if len(rawID) == 0 {
		rawID = w.LegacyID
	}
	id, err := decodeID(rawID)
	if err != nil {
		return err
	}

	// offerPrice is what the storefront charges, so it wins over price.
	rawPrice := w.OfferPrice
	if len(rawPrice) == 0 {
		rawPrice = w.Price
	}
	price, err := decodePrice(rawPrice)
	if err != nil {
		return err
	}

	*p = Product{
		ID:          id,
		Name:        w.Name,
		Description: w.Description,
		Rating:      w.Rating,
		Price:       price,
		ImageURL:    firstNonEmpty(w.ImageURL, w.Image, w.ImgSrc),
	}
	return nil
}

// decodeID accepts both string and numeric ids ("3" and 3).
func decodeID(raw json.RawMessage) (ID, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("%w: missing", ErrInvalidProductID)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidProductID, raw)
		}
		s = n.String()
	}
	return ParseID(s)
}

func decodePrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, fmt.Errorf("%w: missing", ErrInvalidPrice)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParsePrice(s)
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, raw)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
