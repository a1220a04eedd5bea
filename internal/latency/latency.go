// Package latency simulates the response time of the scripted AI and delivery
// backends. Callers receive a Func so tests can swap in None or a failing stand-in.
package latency

import (
	"context"
	"time"
)

// Func blocks for d or until ctx is done.
type Func func(ctx context.Context, d time.Duration) error

// Timer waits on a real timer.
func Timer(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// None returns immediately.
func None(context.Context, time.Duration) error {
	return nil
}

// Scaled multiplies every delay by scale. A zero scale disables waiting.
func Scaled(f Func, scale float64) Func {
	if scale == 0 {
		return None
	}
	return func(ctx context.Context, d time.Duration) error {
		return f(ctx, time.Duration(float64(d)*scale))
	}
}
