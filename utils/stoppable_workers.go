package utils

import (
	"context"
	"sync"

	goutils "go.viam.com/utils"
)

// StoppableWorkers is a collection of goroutines sharing one context that can be stopped
// together. Once stopped it cannot be restarted; make a new one instead.
type StoppableWorkers struct {
	mu         sync.Mutex
	ctx        context.Context
	cancelFunc func()
	workers    sync.WaitGroup
}

// NewStoppableWorkers runs each function in its own goroutine with a context derived
// from parent. Panics in workers are captured and logged rather than crashing.
func NewStoppableWorkers(parent context.Context, funcs ...func(context.Context)) *StoppableWorkers {
	ctx, cancelFunc := context.WithCancel(parent)
	sw := &StoppableWorkers{ctx: ctx, cancelFunc: cancelFunc}
	sw.Add(funcs...)
	return sw
}

// Add starts another goroutine per function. It is a no-op after Stop.
func (sw *StoppableWorkers) Add(funcs ...func(context.Context)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.ctx.Err() != nil {
		return
	}

	sw.workers.Add(len(funcs))
	for _, f := range funcs {
		goutils.PanicCapturingGo(func() {
			defer sw.workers.Done()
			f(sw.ctx)
		})
	}
}

// Stop cancels the shared context and waits for every worker to return.
func (sw *StoppableWorkers) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.cancelFunc()
	sw.workers.Wait()
}

// Context is the context the workers are running under.
func (sw *StoppableWorkers) Context() context.Context {
	return sw.ctx
}
