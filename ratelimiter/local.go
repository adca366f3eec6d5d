package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter limits requests per minute and, optionally, per day.
type RateLimiter struct {
	mu        sync.Mutex
	perMinute *TokenBucket
	perDay    *TokenBucket // nil when unlimited
}

// Ensure RateLimiter implements Limiter.
var _ Limiter = (*RateLimiter)(nil)

// New creates a limiter allowing requestsPerMinute requests each minute and,
// when requestsPerDay > 0, at most requestsPerDay requests each day.
func New(requestsPerMinute, requestsPerDay int) *RateLimiter {
	rl := &RateLimiter{
		perMinute: NewTokenBucket(requestsPerMinute, requestsPerMinute, time.Minute),
	}
	if requestsPerDay > 0 {
		rl.perDay = NewTokenBucket(requestsPerDay, requestsPerDay, 24*time.Hour)
	}
	return rl
}

// TryAcquire takes one slot from every bucket, or none if any bucket is empty.
func (rl *RateLimiter) TryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.perMinute.HasCapacity(1) {
		return false
	}
	if rl.perDay != nil && !rl.perDay.HasCapacity(1) {
		return false
	}
	rl.perMinute.Consume(1)
	if rl.perDay != nil {
		rl.perDay.Consume(1)
	}
	return true
}

// TimeUntilAvailable returns the longest wait across buckets.
func (rl *RateLimiter) TimeUntilAvailable() time.Duration {
	wait := rl.perMinute.TimeUntilAvailable(1)
	if rl.perDay != nil {
		wait = max(wait, rl.perDay.TimeUntilAvailable(1))
	}
	return wait
}

// WaitAndAcquire waits until a slot is available (up to maxWait), then takes it.
// If maxWait is 0, there is no limit on how long to wait.
func (rl *RateLimiter) WaitAndAcquire(ctx context.Context, maxWait time.Duration) error {
	for {
		if rl.TryAcquire() {
			return nil
		}

		waitDuration := rl.TimeUntilAvailable()
		if waitDuration <= 0 {
			waitDuration = time.Millisecond
		}
		if maxWait > 0 && waitDuration > maxWait {
			return fmt.Errorf("rate limit wait time %v exceeds max wait %v", waitDuration, maxWait)
		}

		timer := time.NewTimer(waitDuration)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// TokenBucket implements a token bucket rate limit algorithm.
type TokenBucket struct {
	mu             sync.Mutex
	capacity       int
	remaining      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewTokenBucket creates a new token bucket.
func NewTokenBucket(capacity int, initialTokens int, refillInterval time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:       capacity,
		remaining:      initialTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// HasCapacity checks if tokens are available WITHOUT consuming them.
func (tb *TokenBucket) HasCapacity(tokens int) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	remaining := tb.remaining
	if time.Since(tb.lastRefill) >= tb.refillInterval {
		remaining = tb.capacity
	}
	return tokens <= remaining
}

// Consume tries to consume a specified number of tokens from the bucket.
func (tb *TokenBucket) Consume(tokens int) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillInterval {
		tb.remaining = tb.capacity
		tb.lastRefill = now
	}
	if tokens <= tb.remaining {
		tb.remaining -= tokens
		return true
	}
	return false
}

// TimeUntilAvailable returns how long until tokens would be available (read-only).
// The bucket refills completely once per interval.
func (tb *TokenBucket) TimeUntilAvailable(tokens int) time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := time.Since(tb.lastRefill)
	if elapsed >= tb.refillInterval || tokens <= tb.remaining {
		return 0
	}
	if tokens > tb.capacity {
		// Never satisfiable; report one full interval so callers stop waiting.
		return tb.refillInterval
	}
	return tb.refillInterval - elapsed
}
