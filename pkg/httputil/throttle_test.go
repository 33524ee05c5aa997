package httputil

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// fakeClock advances only when the throttle sleeps or the test says so.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
	return nil
}

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeThrottle(interval time.Duration) (*Throttle, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	th := NewThrottle(interval)
	th.now = clock.now
	th.sleep = clock.sleep
	return th, clock
}

func TestThrottle_FirstCallDoesNotWait(t *testing.T) {
	th, clock := newFakeThrottle(DefaultInterval)

	if err := th.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("first call slept %v, want no sleep", clock.sleeps)
	}
}

func TestThrottle_WaitsForRemainder(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"immediate", 0, 200 * time.Millisecond},
		{"partial", 50 * time.Millisecond, 150 * time.Millisecond},
		{"exact", 200 * time.Millisecond, 0},
		{"later", time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, clock := newFakeThrottle(DefaultInterval)
			_ = th.Wait(context.Background())

			clock.advance(tt.elapsed)
			_ = th.Wait(context.Background())

			var got time.Duration
			if len(clock.sleeps) > 0 {
				got = clock.sleeps[0]
			}
			if got != tt.want {
				t.Errorf("slept %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThrottle_ConsecutiveStartsAreSpaced(t *testing.T) {
	th, clock := newFakeThrottle(DefaultInterval)

	var starts []time.Time
	for i := 0; i < 5; i++ {
		if err := th.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
		starts = append(starts, clock.now())
		clock.advance(30 * time.Millisecond) // request duration
	}

	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < DefaultInterval {
			t.Errorf("gap %d = %v, want >= %v", i, gap, DefaultInterval)
		}
	}
}

func TestThrottle_ZeroIntervalNeverWaits(t *testing.T) {
	th, clock := newFakeThrottle(0)
	for i := 0; i < 3; i++ {
		_ = th.Wait(context.Background())
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("slept %v, want none", clock.sleeps)
	}
}

func TestThrottle_ContextCancel(t *testing.T) {
	th := NewThrottle(time.Hour)
	_ = th.Wait(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := th.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

func TestThrottle_RealClock(t *testing.T) {
	th := NewThrottle(50 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 95*time.Millisecond {
		t.Errorf("3 calls took %v, want >= 100ms", elapsed)
	}
}

func TestThrottle_ZeroBurstRejects(t *testing.T) {
	th, _ := newFakeThrottle(DefaultInterval)
	th.limiter = rate.NewLimiter(rate.Every(DefaultInterval), 0)

	err := th.Wait(context.Background())
	if !errors.Is(err, ErrThrottleRejected) {
		t.Errorf("Wait() error = %v, want ErrThrottleRejected", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		t.Error("rejection should not look like a deadline")
	}
}
