// Package storefront holds the application state shared with the
// presentation layer: the catalog, the cart, and the signed-in user.
package storefront

import (
	"context"
	"sync"

	"quickcart/internal/auth"
	"quickcart/internal/cart"
	"quickcart/internal/logger"
	"quickcart/internal/metrics"
	"quickcart/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Currency string
	Catalog  product.Fetcher
	Carts    cart.Repository
	Stats    *metrics.Stats
}

// Snapshot is a copy of the state handed to listeners and API responses.
// Changing it does not affect the state.
type Snapshot struct {
	Currency   string            `json:"currency"`
	User       *auth.User        `json:"user,omitempty"`
	IsSeller   bool              `json:"is_seller"`
	UserData   UserData          `json:"user_data"`
	Products   []product.Product `json:"products"`
	CartItems  cart.Items        `json:"cart_items"`
	CartCount  int               `json:"cart_count"`
	CartAmount decimal.Decimal   `json:"cart_amount"`
}

type Listener func(Snapshot)

type State struct {
	currency string
	catalog  product.Fetcher
	carts    cart.Repository
	stats    *metrics.Stats

	mu         sync.RWMutex
	products   []product.Product
	items      cart.Items
	user       *auth.User
	isSeller   bool
	userData   UserData
	generation uint64
	closed     bool

	listeners map[int]Listener
	nextID    int
}

// New builds a state and rehydrates the cart from opts.Carts. A missing or
// unreadable snapshot leaves the cart empty.
func New(ctx context.Context, opts Options) *State {
	if opts.Catalog == nil {
		opts.Catalog = product.NoCatalog
	}
	if opts.Stats == nil {
		opts.Stats = &metrics.Stats{}
	}

	s := &State{
		currency:  opts.Currency,
		catalog:   opts.Catalog,
		carts:     opts.Carts,
		stats:     opts.Stats,
		products:  []product.Product{},
		items:     cart.Items{},
		listeners: make(map[int]Listener),
	}

	if s.carts != nil {
		items, err := s.carts.Load(ctx)
		if err != nil {
			s.stats.RestoreFailures.Inc()
			logger.FromCtx(ctx).Warn("starting with an empty cart", zap.Error(err))
		}
		s.items = cart.Normalize(items)
	}

	return s
}

// Currency is fixed at construction.
func (s *State) Currency() string {
	return s.currency
}

// Subscribe registers l for every state change and returns a func that
// removes it.
func (s *State) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Mount loads catalog and user data in the background. The returned channel
// is closed once both are done.
func (s *State) Mount(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Load(ctx)
	}()
	return done
}

// Load fetches catalog and user data concurrently and waits for both.
func (s *State) Load(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.FetchProductData(gctx)
		return nil
	})
	g.Go(func() error {
		s.FetchUserData(gctx)
		return nil
	})
	_ = g.Wait()
}

// Close detaches the state from its consumers. Listeners are dropped and
// fetches still in flight are discarded when they return.
func (s *State) Close() {
	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[int]Listener)
	s.mu.Unlock()
}

func (s *State) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Currency:   s.currency,
		User:       s.user.Clone(),
		IsSeller:   s.isSeller,
		UserData:   s.userData,
		Products:   append([]product.Product{}, s.products...),
		CartItems:  s.items.Clone(),
		CartCount:  cart.Count(s.items),
		CartAmount: cart.Amount(s.items, s.products),
	}
}

// commit must be called with s.mu held. It returns the listeners to notify
// together with the snapshot they should see.
func (s *State) commit() ([]Listener, Snapshot) {
	if s.closed || len(s.listeners) == 0 {
		return nil, Snapshot{}
	}
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	return ls, s.snapshotLocked()
}

func notify(ls []Listener, snap Snapshot) {
	for _, l := range ls {
		l(snap)
	}
}
