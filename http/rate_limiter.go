package http

import (
	"sync"
	"time"
)

const bucketCleanupThreshold = 1 * time.Hour

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a fixed-window token bucket per client key. Idle buckets are
// dropped by Cleanup, which the housekeeping scheduler calls.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	clients   map[string]*clientBucket
	now       func() time.Time
}

func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	return &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		clients:   make(map[string]*clientBucket),
		now:       time.Now,
	}
}

// Cleanup removes buckets idle for longer than an hour and returns how many.
func (r *RateLimiter) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for key, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(r.clients, key)
			removed++
		}
	}
	return removed
}

func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[key]

	if !exists {
		r.clients[key] = &clientBucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(bucket.lastRefill) >= r.refillDur {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}
