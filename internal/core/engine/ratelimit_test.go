package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// steppingClock jumps forward instead of sleeping, so sequential callers
// observe exact waits without real delays.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func admitAsync(limiter *RateLimiter, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := limiter.Admit(ctx)
		done <- err
	}()
	return done
}

func TestRateLimiterUnderQuotaDoesNotWait(t *testing.T) {
	clock := NewVirtualClock(epoch)
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(3), Window: time.Second}, clock)

	for i := 0; i < 3; i++ {
		waited, err := limiter.Admit(context.Background())
		require.NoError(t, err)
		require.Zero(t, waited)
	}
	require.Equal(t, 3, limiter.InWindow())
}

func TestRateLimiterBlocksUntilOldestLeavesWindow(t *testing.T) {
	clock := NewVirtualClock(epoch)
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(2), Window: 1000 * time.Millisecond}, clock)

	_, err := limiter.Admit(context.Background())
	require.NoError(t, err)
	_, err = limiter.Admit(context.Background())
	require.NoError(t, err)

	done := admitAsync(limiter, context.Background())
	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)

	clock.Advance(999 * time.Millisecond)
	require.Equal(t, 1, clock.Waiters())
	select {
	case <-done:
		t.Fatal("third admission returned before the window elapsed")
	default:
	}

	clock.Advance(time.Millisecond)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("third admission did not return after the window elapsed")
	}

	// Both earlier records left the window at the moment of admission.
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	require.Equal(t, []time.Time{epoch.Add(time.Second)}, limiter.queue)
}

func TestRateLimiterWaitDuration(t *testing.T) {
	clock := &steppingClock{now: epoch}
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(2), Window: time.Second}, clock)

	_, err := limiter.Admit(context.Background())
	require.NoError(t, err)
	clock.Advance(200 * time.Millisecond)
	_, err = limiter.Admit(context.Background())
	require.NoError(t, err)
	clock.Advance(300 * time.Millisecond)

	// t0 = epoch, now = epoch+500ms: expect t0 + W - now.
	waited, err := limiter.Admit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, waited)
	require.Equal(t, epoch.Add(time.Second), clock.Now())

	limiter.mu.Lock()
	last := limiter.queue[len(limiter.queue)-1]
	limiter.mu.Unlock()
	require.Equal(t, epoch.Add(time.Second), last)
}

func TestRateLimiterPrunesExpiredRecords(t *testing.T) {
	clock := &steppingClock{now: epoch}
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(2), Window: time.Second}, clock)

	_, err := limiter.Admit(context.Background())
	require.NoError(t, err)
	clock.Advance(100 * time.Millisecond)
	_, err = limiter.Admit(context.Background())
	require.NoError(t, err)

	// Exactly one window after the first record: it no longer counts.
	clock.Advance(900 * time.Millisecond)
	waited, err := limiter.Admit(context.Background())
	require.NoError(t, err)
	require.Zero(t, waited)
	require.Equal(t, 2, limiter.InWindow())

	for i := 0; i < 50; i++ {
		clock.Advance(time.Second)
		waited, err := limiter.Admit(context.Background())
		require.NoError(t, err)
		require.Zero(t, waited)
	}
	require.Equal(t, 1, limiter.InWindow())
}

func TestRateLimiterSequentialQuotaInvariant(t *testing.T) {
	const (
		quota  = 3
		window = time.Second
	)

	rng := rand.New(rand.NewPCG(7, 11))
	for _, n := range []int{1, 5, 25, 200} {
		clock := &steppingClock{now: epoch}
		limiter := NewRateLimiter(RateLimit{Quota: PerWindow(quota), Window: window}, clock)

		admitted := make([]time.Time, 0, n)
		for i := 0; i < n; i++ {
			clock.Advance(time.Duration(rng.IntN(600)) * time.Millisecond)
			_, err := limiter.Admit(context.Background())
			require.NoError(t, err)
			admitted = append(admitted, clock.Now())
		}

		for i, start := range admitted {
			count := 0
			for _, ts := range admitted[i:] {
				if ts.Before(start.Add(window)) {
					count++
				}
			}
			require.LessOrEqual(t, count, quota, "window starting at admission %d of %d", i, n)
		}
	}
}

func TestRateLimiterConcurrentCallersNeverExceedQuota(t *testing.T) {
	clock := NewVirtualClock(epoch)
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(3), Window: time.Second}, clock)

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := limiter.Admit(context.Background())
			if err == nil {
				admitted.Add(1)
			}
		}()
	}

	for _, want := range []int32{3, 6, 9} {
		require.Eventually(t, func() bool {
			return admitted.Load() == want && clock.Waiters() == 1
		}, 2*time.Second, time.Millisecond)
		require.LessOrEqual(t, limiter.InWindow(), 3)
		clock.Advance(time.Second)
	}

	wg.Wait()
	require.EqualValues(t, 10, admitted.Load())
	require.LessOrEqual(t, limiter.InWindow(), 3)
}

func TestRateLimiterCancelledWaitRecordsNothing(t *testing.T) {
	clock := NewVirtualClock(epoch)
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(1), Window: time.Minute}, clock)

	_, err := limiter.Admit(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := admitAsync(limiter, ctx)
	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("cancelled admission did not return")
	}
	require.Equal(t, 1, limiter.InWindow())

	// The critical section was released.
	clock.Advance(time.Minute)
	_, err = limiter.Admit(context.Background())
	require.NoError(t, err)
}

func TestRateLimiterUnlimitedNeverWaits(t *testing.T) {
	clock := NewVirtualClock(epoch)
	limiter := NewRateLimiter(RateLimit{Quota: Unlimited()}, clock)
	require.Equal(t, DefaultWindow, limiter.Limit().Window)

	for i := 0; i < 1000; i++ {
		waited, err := limiter.Admit(context.Background())
		require.NoError(t, err)
		require.Zero(t, waited)
	}
	require.Zero(t, clock.Waiters())
}

func TestRateLimitersAreIndependent(t *testing.T) {
	clock := NewVirtualClock(epoch)
	first := NewRateLimiter(RateLimit{Quota: PerWindow(1), Window: time.Minute}, clock)
	second := NewRateLimiter(RateLimit{Quota: PerWindow(1), Window: time.Minute}, clock)

	_, err := first.Admit(context.Background())
	require.NoError(t, err)

	waited, err := second.Admit(context.Background())
	require.NoError(t, err)
	require.Zero(t, waited)
	require.Equal(t, 1, first.InWindow())
	require.Equal(t, 1, second.InWindow())
}

func TestRateLimiterRealClock(t *testing.T) {
	const window = 150 * time.Millisecond
	limiter := NewRateLimiter(RateLimit{Quota: PerWindow(2), Window: window}, nil)

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := limiter.Admit(context.Background())
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), window/2)

	_, err := limiter.Admit(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), window)
}

func TestQuota(t *testing.T) {
	require.True(t, Unlimited().Unlimited())
	require.True(t, QuotaFromInt(0).Unlimited())
	require.True(t, QuotaFromInt(-4).Unlimited())

	limit, bounded := QuotaFromInt(5).Limit()
	require.True(t, bounded)
	require.Equal(t, 5, limit)
	require.Equal(t, "5", PerWindow(5).String())
	require.Equal(t, "unlimited", Unlimited().String())

	require.Panics(t, func() { PerWindow(0) })
}
