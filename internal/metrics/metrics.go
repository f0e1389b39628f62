package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Stats is shared by every storefront state of a process.
type Stats struct {
	CatalogFetches   Counter
	CatalogFallbacks Counter
	StaleFetches     Counter
	PersistFailures  Counter
	RestoreFailures  Counter
	CartMutations    Counter
	SessionsCreated  Counter
	SessionsEvicted  Counter

	lastFetchNanos int64
}

func (s *Stats) ObserveFetch(d time.Duration) {
	atomic.StoreInt64(&s.lastFetchNanos, int64(d))
}

type Snapshot struct {
	CatalogFetches   uint64        `json:"catalog_fetches"`
	CatalogFallbacks uint64        `json:"catalog_fallbacks"`
	StaleFetches     uint64        `json:"stale_fetches"`
	PersistFailures  uint64        `json:"persist_failures"`
	RestoreFailures  uint64        `json:"restore_failures"`
	CartMutations    uint64        `json:"cart_mutations"`
	SessionsCreated  uint64        `json:"sessions_created"`
	SessionsEvicted  uint64        `json:"sessions_evicted"`
	LastFetch        time.Duration `json:"last_fetch_ns"`
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		CatalogFetches:   s.CatalogFetches.Load(),
		CatalogFallbacks: s.CatalogFallbacks.Load(),
		StaleFetches:     s.StaleFetches.Load(),
		PersistFailures:  s.PersistFailures.Load(),
		RestoreFailures:  s.RestoreFailures.Load(),
		CartMutations:    s.CartMutations.Load(),
		SessionsCreated:  s.SessionsCreated.Load(),
		SessionsEvicted:  s.SessionsEvicted.Load(),
		LastFetch:        time.Duration(atomic.LoadInt64(&s.lastFetchNanos)),
	}
}
