package selftest

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// DelayFunc suspends the caller for d. It returns ctx's error if ctx ends first; this is
// the only place the harness blocks.
type DelayFunc func(ctx context.Context, d time.Duration) error

// ClockDelay returns a DelayFunc that waits on clk.
func ClockDelay(clk clock.Clock) DelayFunc {
	return func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		timer := clk.Timer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

// FastForwardDelay returns a DelayFunc that advances mock by the requested duration
// instead of waiting, so a simulated bench runs as fast as it can be computed.
func FastForwardDelay(mock *clock.Mock) DelayFunc {
	return func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		mock.Add(d)
		return ctx.Err()
	}
}
