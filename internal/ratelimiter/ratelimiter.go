// Package ratelimiter provides token-bucket request throttling for the
// HTTP server, with one bucket per client.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// staleAfter is how long an idle client bucket is kept before pruning.
const staleAfter = 10 * time.Minute

// Limiter throttles requests using the token bucket algorithm, keyed by
// client (typically the remote IP).
//
// Each client gets its own bucket refilled at the configured sustained rate;
// the burst capacity allows temporary spikes above that rate. Buckets for
// clients that have been idle longer than staleAfter are pruned lazily on
// access so the map does not grow without bound.
//
// Thread safety:
// All methods are safe for concurrent use.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*client
	// lastPrune tracks when idle buckets were last evicted
	lastPrune time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a Limiter with the given sustained rate and burst capacity.
//
// Special cases:
//   - requestsPerSecond = 0: no limiting, Allow always returns true
//   - burst = 0: burst defaults to the sustained rate
func New(requestsPerSecond, burst uint) *Limiter {
	if burst == 0 {
		burst = requestsPerSecond
	}

	return &Limiter{
		rps:       rate.Limit(requestsPerSecond),
		burst:     int(burst),
		clients:   make(map[string]*client),
		lastPrune: time.Now(),
	}
}

// Allow reports whether a request from the given client is allowed under
// the current rate limit, consuming one token when it is.
//
// This is the fast path: it never blocks. Callers should reject the request
// with HTTP 429 when Allow returns false.
func (l *Limiter) Allow(key string) bool {
	if l.rps == 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPrune) > staleAfter {
		l.prune(now)
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.Allow()
}

// Clients returns the number of tracked client buckets.
// Primarily useful for monitoring and tests.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// prune evicts buckets idle longer than staleAfter. Caller must hold mu.
func (l *Limiter) prune(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > staleAfter {
			delete(l.clients, key)
		}
	}
	l.lastPrune = now
}
