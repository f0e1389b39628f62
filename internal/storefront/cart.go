package storefront

import (
	"context"

	"quickcart/internal/cart"
	"quickcart/internal/logger"
	"quickcart/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddToCart increments the quantity of id by one, persists the cart and
// notifies listeners.
func (s *State) AddToCart(ctx context.Context, id product.ID) {
	s.mu.Lock()
	s.items = cart.Add(s.items, id)
	s.afterMutation(ctx, "AddToCart")
}

// UpdateQuantity sets the quantity of id. Zero removes the entry; a negative
// quantity returns cart.ErrInvalidQuantity and changes nothing.
func (s *State) UpdateQuantity(ctx context.Context, id product.ID, quantity int) error {
	s.mu.Lock()
	next, err := cart.SetQuantity(s.items, id, quantity)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = next
	s.afterMutation(ctx, "UpdateQuantity")
	return nil
}

// SetCartItems replaces the whole cart. Non-positive entries are dropped.
func (s *State) SetCartItems(ctx context.Context, items cart.Items) {
	s.mu.Lock()
	s.items = cart.Normalize(items)
	s.afterMutation(ctx, "SetCartItems")
}

// afterMutation persists and notifies. It is entered with s.mu held and
// releases it.
func (s *State) afterMutation(ctx context.Context, method string) {
	items := s.items
	ls, snap := s.commit()
	s.stats.CartMutations.Inc()

	// Persisting under the lock keeps writes in mutation order.
	if s.carts != nil {
		if err := s.carts.Save(ctx, items); err != nil {
			s.stats.PersistFailures.Inc()
			logger.FromCtx(ctx).Warn("cart change not persisted",
				zap.String("layer", "storefront"),
				zap.String("method", method),
				zap.Error(err),
			)
		}
	}
	s.mu.Unlock()

	notify(ls, snap)
}

func (s *State) CartItems() cart.Items {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Clone()
}

func (s *State) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.Count(s.items)
}

// CartAmount is the cart total against the loaded catalog, floored to the
// cent. Items missing from the catalog do not count.
func (s *State) CartAmount() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.Amount(s.items, s.products)
}

func (s *State) CartLines() []cart.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cart.Lines(s.items, s.products)
}
