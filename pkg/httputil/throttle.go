package httputil

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum gap between two outbound requests.
const DefaultInterval = 200 * time.Millisecond

// ErrThrottleRejected is returned by [Throttle.Wait] when the limiter cannot
// ever admit a single call. NewThrottle always builds limiters that can.
var ErrThrottleRejected = errors.New("throttle cannot admit request")

// Throttle spaces calls so that no two of them start less than a fixed
// interval apart. The first call never waits.
//
// It is a rate.Limiter with a burst of one: each [Throttle.Wait] reserves
// the next slot and blocks the calling goroutine until that slot is due.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewThrottle creates a Throttle with the given minimum interval.
// An interval <= 0 disables waiting.
func NewThrottle(interval time.Duration) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttle{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Interval returns the configured minimum interval.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Wait blocks until the next call may start. It returns ctx.Err() if the
// context ends first, in which case the reserved slot is released.
func (t *Throttle) Wait(ctx context.Context) error {
	now := t.now()
	r := t.limiter.ReserveN(now, 1)
	if !r.OK() {
		return ErrThrottleRejected
	}
	d := r.DelayFrom(now)
	if d <= 0 {
		return nil
	}
	if err := t.sleep(ctx, d); err != nil {
		r.CancelAt(t.now())
		return err
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
