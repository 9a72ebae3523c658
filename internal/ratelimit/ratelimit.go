// Package ratelimit provides a per-key token-bucket rate limiter. Momentum
// keys it by client IP to throttle the browser-facing auth endpoints.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedRateLimiter maintains one token bucket per key. Buckets are created
// lazily on first use and all share the same rate and burst.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter allowing rps requests per second with the given
// burst per key.
func New(rps float64, burst int) *KeyedRateLimiter {
	k := &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go k.run()
	return k
}

// Allow reports whether a request for key may proceed right now.
func (k *KeyedRateLimiter) Allow(key string) bool {
	return k.bucket(key).Allow()
}

// Wait blocks until a request for key may proceed or ctx is canceled.
func (k *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return k.bucket(key).Wait(ctx)
}

func (k *KeyedRateLimiter) bucket(key string) *rate.Limiter {
	k.mu.RLock()
	l, ok := k.limiters[key]
	k.mu.RUnlock()
	if ok {
		return l
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if l, ok = k.limiters[key]; ok {
		return l
	}
	l = rate.NewLimiter(k.limit, k.burst)
	k.limiters[key] = l
	return l
}

// Stop releases the background goroutine. Safe to call more than once.
func (k *KeyedRateLimiter) Stop() {
	k.stopOnce.Do(func() {
		close(k.done)
	})
}

// run parks until Stop. Buckets are never evicted: keys are client IPs on
// the auth endpoints, so the map stays small for the life of the process.
func (k *KeyedRateLimiter) run() {
	<-k.done
}
