package storefront

import (
	"context"

	"quickcart/internal/logger"
	"quickcart/internal/metrics"
	"quickcart/internal/product"

	"go.uber.org/zap"
)

// FetchProductData replaces the catalog with the live one, or with the seed
// catalog when the fetch fails. The result is dropped if the state was
// closed or another fetch started meanwhile.
func (s *State) FetchProductData(ctx context.Context) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storefront"),
		zap.String("method", "FetchProductData"),
	)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	timer := metrics.StartTimer()
	s.stats.CatalogFetches.Inc()

	products, err := s.catalog.FetchProducts(ctx)
	s.stats.ObserveFetch(timer.Duration())
	if err != nil {
		s.stats.CatalogFallbacks.Inc()
		log.Warn("catalog fetch failed, using seed catalog", zap.Error(err))
		products = product.Seed()
	}
	if products == nil {
		products = []product.Product{}
	}

	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		s.stats.StaleFetches.Inc()
		log.Debug("discarding stale catalog result", zap.Uint64("generation", gen))
		return
	}
	s.products = products
	ls, snap := s.commit()
	s.mu.Unlock()

	log.Info("catalog loaded", zap.Int("count", len(products)))
	notify(ls, snap)
}

func (s *State) Products() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]product.Product{}, s.products...)
}

// Product looks id up in the loaded catalog.
func (s *State) Product(id product.ID) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}
