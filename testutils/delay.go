package testutils

import (
	"context"
	"sync"
	"time"
)

// DelayRecorder records every requested delay and optionally forwards it.
type DelayRecorder struct {
	mu     sync.Mutex
	delays []time.Duration

	// Next, if set, is called for every delay after it is recorded.
	Next func(ctx context.Context, d time.Duration) error
}

// Delay records d and forwards it to Next.
func (r *DelayRecorder) Delay(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	next := r.Next
	r.mu.Unlock()
	if next != nil {
		return next(ctx, d)
	}
	return ctx.Err()
}

// Delays returns a copy of every delay requested so far.
func (r *DelayRecorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

// Count returns how many times d was requested.
func (r *DelayRecorder) Count(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.delays {
		if got == d {
			n++
		}
	}
	return n
}

// Total is the sum of every requested delay.
func (r *DelayRecorder) Total() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total time.Duration
	for _, d := range r.delays {
		total += d
	}
	return total
}
