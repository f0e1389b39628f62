package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"quickcart/internal/cart"
	"quickcart/internal/logger"
	"quickcart/internal/metrics"
	"quickcart/internal/product"
	"quickcart/internal/storage"
	"quickcart/internal/storefront"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrManagerClosed    = errors.New("session manager closed")
)

type Options struct {
	Currency string
	Catalog  product.Fetcher
	Storage  storage.Storage
	Stats    *metrics.Stats
}

type entry struct {
	state    *storefront.State
	lastSeen time.Time
}

// Manager owns one storefront state per browser session. Each session's
// cart is stored under its own key prefix.
type Manager struct {
	opts  Options
	now   func() time.Time
	group singleflight.Group

	mu       sync.Mutex
	sessions map[string]*entry
	closed   bool
}

func NewManager(opts Options) *Manager {
	if opts.Stats == nil {
		opts.Stats = &metrics.Stats{}
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	return &Manager{
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the state for id, creating and mounting it on first use. The
// cart is rehydrated outside the manager lock so a slow storage read only
// holds up requests for the same id.
func (m *Manager) Get(ctx context.Context, id string) (*storefront.State, error) {
	if !ValidID(id) {
		return nil, ErrInvalidSessionID
	}

	if state, ok := m.lookup(id); ok {
		return state, nil
	}

	v, err, _ := m.group.Do(id, func() (any, error) {
		if state, ok := m.lookup(id); ok {
			return state, nil
		}

		// The state outlives the request that created it.
		bg := context.WithoutCancel(ctx)
		state := storefront.New(bg, storefront.Options{
			Currency: m.opts.Currency,
			Catalog:  m.opts.Catalog,
			Carts:    cart.NewRepository(storage.WithPrefix(m.opts.Storage, keyPrefix(id))),
			Stats:    m.opts.Stats,
		})

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			state.Close()
			return nil, ErrManagerClosed
		}
		m.sessions[id] = &entry{state: state, lastSeen: m.now()}
		m.mu.Unlock()

		m.opts.Stats.SessionsCreated.Inc()
		state.Mount(bg)

		logger.FromCtx(ctx).Debug("session created", zap.String("session_id", id))
		return state, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*storefront.State), nil
}

func (m *Manager) lookup(id string) (*storefront.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.state, true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes and forgets sessions idle for longer than maxIdle. Their
// carts stay in storage and come back on the next Get.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	var idle []*storefront.State
	for id, e := range m.sessions {
		if m.now().Sub(e.lastSeen) > maxIdle {
			idle = append(idle, e.state)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	m.opts.Stats.SessionsEvicted.Add(uint64(len(idle)))
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				logger.FromCtx(ctx).Info("idle sessions evicted", zap.Int("count", n))
			}
		}
	}
}

// Close closes every session. Later calls to Get fail with
// ErrManagerClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range sessions {
		e.state.Close()
	}
}

func keyPrefix(id string) string {
	return "session:" + id + ":"
}

type ctxKey string

const idKey ctxKey = "session_id"

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(idKey).(string)
	return id
}
