package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	c.Add(5)
	assert.Equal(t, uint64(15), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestStats_Snapshot(t *testing.T) {
	var s Stats
	s.CatalogFetches.Inc()
	s.CatalogFallbacks.Inc()
	s.CartMutations.Add(3)
	s.ObserveFetch(40 * time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.CatalogFetches)
	assert.Equal(t, uint64(1), snap.CatalogFallbacks)
	assert.Equal(t, uint64(3), snap.CartMutations)
	assert.Equal(t, uint64(0), snap.PersistFailures)
	assert.Equal(t, 40*time.Millisecond, snap.LastFetch)
}
