package github

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/logger"
)

const (
	// LowWaterMark is the remaining-quota level at which a warning is logged.
	LowWaterMark = 10

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimitState is the quota metadata of a single response. Either field
// is nil when the upstream omitted the header.
type RateLimitState struct {
	Remaining *int
	Reset     *int64
}

// RateLimitStateFromHeader parses the quota headers. Unparseable values are
// treated as absent.
func RateLimitStateFromHeader(h http.Header) RateLimitState {
	var state RateLimitState
	if h == nil {
		return state
	}

	if remaining := h.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil && val >= 0 {
			state.Remaining = &val
		}
	}

	if reset := h.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			state.Reset = &val
		}
	}

	return state
}

// Exhausted reports whether the response says no quota is left.
func (s RateLimitState) Exhausted() bool {
	return s.Remaining != nil && *s.Remaining == 0
}

// WaitSeconds returns max(0, reset-now) and false when reset is unknown.
func (s RateLimitState) WaitSeconds(now time.Time) (int64, bool) {
	if s.Reset == nil {
		return 0, false
	}
	wait := *s.Reset - now.Unix()
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

// CheckRateLimit inspects the quota of one response. It logs a warning when
// quota is scarce and returns a RateLimited error once it is exhausted. It
// runs for successful and failed responses alike.
func CheckRateLimit(state RateLimitState, now time.Time) error {
	if state.Remaining == nil {
		return nil
	}

	remaining := *state.Remaining
	if remaining <= LowWaterMark {
		logger.L().Warn("rate limit getting low", zap.Int("remaining", remaining))
	}

	if remaining == 0 {
		return rateLimitedError(state, now, nil)
	}
	return nil
}

func rateLimitedError(state RateLimitState, now time.Time, extra map[string]any) *domain.Error {
	details := map[string]any{"rate_limit_remaining": 0}
	for k, v := range extra {
		details[k] = v
	}
	if state.Reset != nil {
		details["rate_limit_reset"] = *state.Reset
	}
	if wait, ok := state.WaitSeconds(now); ok {
		details["wait_seconds"] = wait
	}
	return domain.NewError(
		domain.KindRateLimited,
		http.StatusTooManyRequests,
		"Rate limit exceeded. Please wait before making more requests.",
		details,
	)
}

// Throttle spaces out requests on the client side. A nil Throttle never
// waits.
type Throttle struct {
	bucket *rate.Limiter
}

// NewThrottle returns a throttle admitting perSecond requests per second, or
// nil when perSecond is not positive.
func NewThrottle(perSecond float64) *Throttle {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Throttle{bucket: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a request may be sent or ctx ends.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.bucket.Wait(ctx)
}
