package selftest

import (
	"context"
	"sync"

	"go.viam.com/motorcheck/utils"
)

// A Harness runs a Loop in the background so that it can be started and stopped as the
// host changes mode. Hardware resolved by a successful scan is remembered, so a
// restarted harness goes straight to waiting for the motor. A failed scan is retried on
// the next Start.
type Harness struct {
	loop *Loop

	mu       sync.Mutex
	workers  *utils.StoppableWorkers
	done     chan struct{}
	err      error
	hardware *ResolvedHardware
}

// NewHarness returns a stopped Harness for loop.
func NewHarness(loop *Loop) *Harness {
	done := make(chan struct{})
	close(done)
	return &Harness{loop: loop, done: done}
}

// Start launches the loop under ctx. It does nothing if the loop is already running.
func (h *Harness) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running() {
		return
	}
	done := make(chan struct{})
	h.done = done
	h.err = nil
	h.workers = utils.NewStoppableWorkers(ctx, func(ctx context.Context) {
		defer close(done)
		err := h.run(ctx)
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
	})
}

func (h *Harness) run(ctx context.Context) error {
	h.mu.Lock()
	cached := h.hardware
	h.mu.Unlock()

	var hw ResolvedHardware
	if cached != nil {
		hw = *cached
	} else {
		resolved, err := h.loop.Resolve(ctx)
		if err != nil {
			return err
		}
		hw = resolved
		h.mu.Lock()
		h.hardware = &resolved
		h.mu.Unlock()
	}
	return h.loop.RunResolved(ctx, hw)
}

// Stop cancels the loop and waits for it to return. The motor is left stopped.
func (h *Harness) Stop() {
	h.mu.Lock()
	workers := h.workers
	h.mu.Unlock()
	if workers != nil {
		workers.Stop()
	}
}

// Running reports whether the loop is still going.
func (h *Harness) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running()
}

func (h *Harness) running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Done is closed when the current run of the loop returns.
func (h *Harness) Done() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// Err is the error the last run of the loop returned. It is context.Canceled after Stop
// and a *MissingHardwareError if the scan failed.
func (h *Harness) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Hardware returns the cached hardware, if a scan has succeeded.
func (h *Harness) Hardware() (ResolvedHardware, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hardware == nil {
		return ResolvedHardware{}, false
	}
	return *h.hardware, true
}
