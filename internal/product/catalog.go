package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quickcart/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const productsPath = "/api/products"

// Fetcher retrieves the live catalog.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

type catalogResponse struct {
	Products *[]Product `json:"products"`
}

type HTTPCatalog struct {
	client   *resty.Client
	validate *validator.Validate
}

func NewHTTPCatalog(baseURL string, timeout time.Duration) *HTTPCatalog {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPCatalog{
		client:   client,
		validate: validator.New(),
	}
}

func (c *HTTPCatalog) FetchProducts(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "FetchProducts"),
	)

	start := time.Now()

	resp, err := c.client.R().SetContext(ctx).Get(productsPath)
	if err != nil {
		log.Warn("catalog request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if !resp.IsSuccess() {
		log.Warn("catalog returned non-success status", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode())
	}

	var body catalogResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		log.Warn("catalog body could not be decoded", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	if body.Products == nil {
		return nil, fmt.Errorf("%w: products field missing", ErrMalformedCatalog)
	}

	products := *body.Products
	for i := range products {
		if err := c.check(products[i]); err != nil {
			log.Warn("catalog product rejected", zap.Int("index", i), zap.Error(err))
			return nil, fmt.Errorf("%w: product %d: %v", ErrMalformedCatalog, i, err)
		}
	}

	log.Info("catalog fetched",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (c *HTTPCatalog) check(p Product) error {
	if err := c.validate.Struct(p); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

type noCatalog struct{}

// NoCatalog always fails, which makes the caller serve the seed catalog.
var NoCatalog Fetcher = noCatalog{}

func (noCatalog) FetchProducts(context.Context) ([]Product, error) {
	return nil, fmt.Errorf("%w: no endpoint configured", ErrCatalogUnavailable)
}
