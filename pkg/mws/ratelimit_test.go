package mws_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		hourly  int64
		calls   int
		wantErr bool
	}{
		{
			name:   "allows calls within rate",
			rate:   100,
			burst:  10,
			hourly: 200,
			calls:  3,
		},
		{
			name:   "allows burst",
			rate:   100,
			burst:  5,
			hourly: 200,
			calls:  5,
		},
		{
			name:   "hourly cap disabled",
			rate:   100,
			burst:  10,
			hourly: 0,
			calls:  10,
		},
		{
			name:    "rejects when hourly quota reached",
			rate:    100,
			burst:   10,
			hourly:  2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := mws.NewRateLimiter(tt.rate, tt.burst, tt.hourly)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, mws.ErrHourlyQuotaReached)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_HourlyCount(t *testing.T) {
	t.Parallel()

	rl := mws.NewRateLimiter(100, 10, 200)

	assert.Equal(t, int64(0), rl.HourlyCount())
	assert.Equal(t, int64(200), rl.Remaining())

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(2), rl.HourlyCount())
	assert.Equal(t, int64(198), rl.Remaining())

	assert.Equal(t, int64(-1), mws.NewRateLimiter(1, 1, 0).Remaining())
}

func TestRateLimiter_HourlyReset(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	var mu sync.Mutex
	currentTime := start

	rl := mws.NewRateLimiter(
		100, 10, 200,
		mws.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)
	assert.Equal(t, start.Add(time.Hour), rl.ResetAt())

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(2), rl.HourlyCount())

	mu.Lock()
	currentTime = start.Add(61 * time.Minute)
	mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.HourlyCount())
	assert.Equal(t, start.Add(121*time.Minute), rl.ResetAt())
}

func TestRateLimiter_Sync(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	resets := now.Add(30 * time.Minute)
	rl := mws.NewRateLimiter(100, 10, 0, mws.WithRateLimiterNowFunc(func() time.Time {
		return now
	}))

	rl.Sync("Reports/GetReport", nil)
	_, ok := rl.OperationRemaining("Reports/GetReport")
	assert.False(t, ok)

	rl.Sync("Reports/GetReport", &mws.QuotaState{Max: 60, Remaining: 1, ResetsOn: resets})
	remaining, ok := rl.OperationRemaining("Reports/GetReport")
	require.True(t, ok)
	assert.Equal(t, int64(1), remaining)

	// The client-side cap is untouched.
	assert.Equal(t, int64(0), rl.MaxHourly())
	assert.Equal(t, int64(0), rl.HourlyCount())

	require.NoError(t, rl.WaitOperation(context.Background(), "Reports/GetReport"))
	err := rl.WaitOperation(context.Background(), "Reports/GetReport")
	require.ErrorIs(t, err, mws.ErrHourlyQuotaReached)
	assert.Contains(t, err.Error(), "Reports/GetReport (60/60)")

	// Other operations keep going.
	require.NoError(t, rl.WaitOperation(context.Background(), "Orders/ListOrders"))
	require.NoError(t, rl.WaitOperation(context.Background(), "Reports/GetReportList"))
}

func TestRateLimiter_SyncWindowResets(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	rl := mws.NewRateLimiter(100, 10, 0, mws.WithRateLimiterNowFunc(func() time.Time {
		return now
	}))

	rl.Sync("Orders/ListOrders", &mws.QuotaState{Max: 6, Remaining: 0, ResetsOn: now.Add(time.Minute)})
	require.ErrorIs(t, rl.WaitOperation(context.Background(), "Orders/ListOrders"), mws.ErrHourlyQuotaReached)

	now = now.Add(2 * time.Minute)
	require.NoError(t, rl.WaitOperation(context.Background(), "Orders/ListOrders"))
	_, ok := rl.OperationRemaining("Orders/ListOrders")
	assert.False(t, ok)
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	// 1 per 10 seconds, burst 1.
	rl := mws.NewRateLimiter(0.1, 1, 0)

	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
}
