package mws

import (
	"net/http"
	"strconv"
	"time"
)

// Quota headers returned by MWS on throttled operations.
const (
	headerQuotaMax       = "x-mws-quota-max"
	headerQuotaRemaining = "x-mws-quota-remaining"
	headerQuotaResetsOn  = "x-mws-quota-resetsOn"
)

// QuotaState holds the hourly request quota MWS reported for the operation
// that was just called.
type QuotaState struct {
	Max       int64
	Remaining int64
	ResetsOn  time.Time
}

// Used returns how many requests of the current window have been consumed.
func (q *QuotaState) Used() int64 {
	if q == nil {
		return 0
	}
	return q.Max - q.Remaining
}

// ParseQuota reads the quota headers. It returns nil when the response
// carries no quota information, which is the case for unthrottled
// operations.
func ParseQuota(h http.Header) *QuotaState {
	if h == nil {
		return nil
	}
	maxRaw := h.Get(headerQuotaMax)
	remainingRaw := h.Get(headerQuotaRemaining)
	if maxRaw == "" && remainingRaw == "" {
		return nil
	}

	q := &QuotaState{}
	// MWS sends these as decimals ("200.0").
	if f, err := strconv.ParseFloat(maxRaw, 64); err == nil {
		q.Max = int64(f)
	}
	if f, err := strconv.ParseFloat(remainingRaw, 64); err == nil {
		q.Remaining = int64(f)
	}
	if t, err := time.Parse(time.RFC3339, h.Get(headerQuotaResetsOn)); err == nil {
		q.ResetsOn = t
	}
	return q
}
