package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidProductID = errors.New("invalid product id")
	ErrInvalidPrice     = errors.New("invalid price")

	// -- Catalog Endpoint --
	ErrCatalogUnavailable = errors.New("catalog endpoint unavailable")
	ErrMalformedCatalog   = errors.New("malformed catalog response")
)
