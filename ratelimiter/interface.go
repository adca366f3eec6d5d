package ratelimiter

import (
	"context"
	"time"
)

// Limiter defines the interface for request rate limiters.
// Implementations can be local (in-memory) or distributed.
type Limiter interface {
	// TryAcquire atomically checks capacity and takes one request slot if available.
	TryAcquire() bool

	// TimeUntilAvailable returns how long until a request slot would be available (read-only).
	TimeUntilAvailable() time.Duration

	// WaitAndAcquire waits until a slot is available, then takes it.
	// Returns error if context is cancelled or maxWait is exceeded.
	WaitAndAcquire(ctx context.Context, maxWait time.Duration) error
}
