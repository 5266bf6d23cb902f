package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultWindow is the trailing window used when none is configured.
const DefaultWindow = 5 * time.Minute

// Quota is either unlimited or a positive number of admissions per window.
type Quota struct {
	limit int
}

// Unlimited returns a quota that never blocks.
func Unlimited() Quota {
	return Quota{}
}

// PerWindow returns a bounded quota. n must be positive.
func PerWindow(n int) Quota {
	if n <= 0 {
		panic(fmt.Sprintf("engine: quota must be positive, got %d", n))
	}
	return Quota{limit: n}
}

// QuotaFromInt maps a configured value to a quota; zero or negative means unlimited.
func QuotaFromInt(n int) Quota {
	if n <= 0 {
		return Unlimited()
	}
	return PerWindow(n)
}

// Unlimited reports whether the quota never blocks.
func (q Quota) Unlimited() bool {
	return q.limit == 0
}

// Limit returns the bounded limit and false for an unlimited quota.
func (q Quota) Limit() (int, bool) {
	return q.limit, q.limit > 0
}

func (q Quota) String() string {
	if q.Unlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%d", q.limit)
}

// RateLimit is the immutable limiter configuration.
type RateLimit struct {
	Quota  Quota
	Window time.Duration
}

// RateLimiter admits requests so that no trailing window of length Window
// holds more than Quota admissions.
//
// Prune, check, wait and append run as one critical section per admission,
// so the quota holds under concurrent callers too. Callers queue on the
// section in arrival order.
type RateLimiter struct {
	limit RateLimit
	clock Clock

	// sem serializes admissions; mu guards queue for readers.
	sem   chan struct{}
	mu    sync.Mutex
	queue []time.Time
}

// NewRateLimiter creates a limiter. A nil clock uses RealClock and a
// non-positive window uses DefaultWindow.
func NewRateLimiter(limit RateLimit, clock Clock) *RateLimiter {
	if limit.Window <= 0 {
		limit.Window = DefaultWindow
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &RateLimiter{
		limit: limit,
		clock: clock,
		sem:   make(chan struct{}, 1),
	}
}

// Limit returns the limiter configuration.
func (r *RateLimiter) Limit() RateLimit {
	return r.limit
}

// Admit blocks until one more request fits the window, then records it.
// It returns the time spent waiting for the window. If ctx ends first,
// nothing is recorded and ctx.Err() is returned.
func (r *RateLimiter) Admit(ctx context.Context) (time.Duration, error) {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	defer func() { <-r.sem }()

	wait := r.pending(r.clock.Now())

	var waited time.Duration
	if wait > 0 {
		select {
		case <-r.clock.After(wait):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
		waited = wait
	}

	r.mu.Lock()
	admittedAt := r.clock.Now()
	r.prune(admittedAt)
	r.queue = append(r.queue, admittedAt)
	r.mu.Unlock()

	return waited, nil
}

// InWindow returns how many admissions currently count against the quota.
func (r *RateLimiter) InWindow() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(r.clock.Now())
	return len(r.queue)
}

// pending prunes the queue and returns how long the next admission must wait.
func (r *RateLimiter) pending(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(now)
	limit, bounded := r.limit.Quota.Limit()
	if !bounded || len(r.queue) < limit {
		return 0
	}
	// The record that must leave the window to free a slot.
	return r.queue[len(r.queue)-limit].Add(r.limit.Window).Sub(now)
}

// prune drops the prefix of records with ts+window <= now. Callers hold mu.
func (r *RateLimiter) prune(now time.Time) {
	drop := 0
	for drop < len(r.queue) && !r.queue[drop].Add(r.limit.Window).After(now) {
		drop++
	}
	if drop > 0 {
		r.queue = append(r.queue[:0], r.queue[drop:]...)
	}
}
