package mws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrHourlyQuotaReached is returned when the hourly request quota has been
// exhausted.
var ErrHourlyQuotaReached = errors.New("hourly request quota reached")

// RateLimiter mirrors MWS throttling on the client side. MWS models each
// operation as a leaky bucket: a maximum request quota that refills at a
// restore rate, plus for some operations an hourly cap. The bucket maps to
// a token bucket with burst = max quota; the hourly cap is a fixed window
// that resets an hour after the first call in it.
//
// The quota MWS reports in x-mws-quota-* headers belongs to a single
// operation. It is tracked per operation key and only gates that operation.
type RateLimiter struct {
	limiter     *rate.Limiter
	hourly      atomic.Int64
	maxHourly   atomic.Int64
	windowStart time.Time
	resetAt     time.Time
	operations  map[string]*quotaWindow
	mu          sync.Mutex
	nowFunc     func() time.Time
}

// quotaWindow is the server-reported quota of one operation.
type quotaWindow struct {
	max     int64
	used    int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter refilling perSecond requests per second
// up to burst, with at most maxHourly calls per hour. A maxHourly of zero
// disables the hourly cap.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxHourly int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		operations: make(map[string]*quotaWindow),
		nowFunc:    time.Now,
	}
	r.maxHourly.Store(maxHourly)
	for _, opt := range opts {
		opt(r)
	}
	now := r.nowFunc()
	r.windowStart = now
	r.resetAt = now.Add(time.Hour)
	return r
}

// Wait blocks until a request may be sent or ctx is canceled. It returns
// ErrHourlyQuotaReached without blocking once the hourly cap is spent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.checkHourlyReset()

	if limit := r.maxHourly.Load(); limit > 0 && r.hourly.Load() >= limit {
		return fmt.Errorf("%w (%d/%d)", ErrHourlyQuotaReached, r.hourly.Load(), limit)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.hourly.Add(1)
	return nil
}

// WaitOperation is Wait preceded by a check of the quota MWS last reported
// for the operation key. It fails with ErrHourlyQuotaReached without
// blocking while that operation's quota is spent.
func (r *RateLimiter) WaitOperation(ctx context.Context, key string) error {
	if err := r.checkOperation(key); err != nil {
		return err
	}
	if err := r.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.operations[key]; ok {
		w.used++
	}
	return nil
}

func (r *RateLimiter) checkOperation(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.operations[key]
	if !ok {
		return nil
	}
	if r.nowFunc().After(w.resetAt) {
		delete(r.operations, key)
		return nil
	}
	if w.used >= w.max {
		return fmt.Errorf("%w for %s (%d/%d)", ErrHourlyQuotaReached, key, w.used, w.max)
	}
	return nil
}

// OperationRemaining returns the quota left for the operation key as last
// reported by MWS. ok is false when nothing was reported or the window
// has reset.
func (r *RateLimiter) OperationRemaining(key string) (remaining int64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, found := r.operations[key]
	if !found || r.nowFunc().After(w.resetAt) {
		return 0, false
	}
	return max(w.max-w.used, 0), true
}

// MaxHourly returns the hourly cap, zero when disabled.
func (r *RateLimiter) MaxHourly() int64 {
	return r.maxHourly.Load()
}

// HourlyCount returns the number of calls made in the current window.
func (r *RateLimiter) HourlyCount() int64 {
	return r.hourly.Load()
}

// Remaining returns the calls left in the current window, or -1 when the
// hourly cap is disabled.
func (r *RateLimiter) Remaining() int64 {
	limit := r.maxHourly.Load()
	if limit <= 0 {
		return -1
	}
	return max(limit-r.hourly.Load(), 0)
}

// ResetAt returns when the current hourly window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

// Sync records the quota MWS reported for the operation key. Other
// operations and the client-side hourly cap are not affected. Without a
// reset time the window is assumed to end an hour from now.
func (r *RateLimiter) Sync(key string, q *QuotaState) {
	if q == nil || q.Max <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	resetAt := q.ResetsOn
	if resetAt.IsZero() {
		resetAt = r.nowFunc().Add(time.Hour)
	}
	r.operations[key] = &quotaWindow{
		max:     q.Max,
		used:    q.Used(),
		resetAt: resetAt,
	}
}

func (r *RateLimiter) checkHourlyReset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.hourly.Store(0)
		r.windowStart = now
		r.resetAt = now.Add(time.Hour)
	}
}
