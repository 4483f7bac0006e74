package geo

import (
	"context"
	"sync"
	"time"
)

// DefaultCourtesyInterval is the minimum spacing between consecutive calls
// to a public OSM backend from this process.
const DefaultCourtesyInterval = 1 * time.Second

// courtesyLimiter enforces a minimum delay between backend requests.
// The public Nominatim and Overpass instances ask clients to keep at most
// one request per second.
type courtesyLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newCourtesyLimiter(interval time.Duration) *courtesyLimiter {
	return &courtesyLimiter{interval: interval}
}

// Wait blocks until the courtesy interval since the previous request has
// elapsed, or until the context is done.
func (l *courtesyLimiter) Wait(ctx context.Context) {
	l.mu.Lock()
	elapsed := time.Since(l.last)
	var sleep time.Duration
	if elapsed < l.interval {
		sleep = l.interval - elapsed
	}
	l.last = time.Now().Add(sleep)
	l.mu.Unlock()

	if sleep <= 0 {
		return
	}
	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
