package utils

import (
	"context"
	"sync/atomic"
	"testing"

	"go.viam.com/test"
	"go.viam.com/utils/testutils"
)

func TestStoppableWorkers(t *testing.T) {
	var started, stopped atomic.Int32
	worker := func(ctx context.Context) {
		started.Add(1)
		<-ctx.Done()
		stopped.Add(1)
	}

	sw := NewStoppableWorkers(context.Background(), worker, worker)
	testutils.WaitForAssertion(t, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, started.Load(), test.ShouldEqual, 2)
	})

	sw.Stop()
	test.That(t, stopped.Load(), test.ShouldEqual, 2)
	test.That(t, sw.Context().Err(), test.ShouldNotBeNil)

	// Adding after Stop does nothing.
	sw.Add(worker)
	test.That(t, started.Load(), test.ShouldEqual, 2)
}

func TestStoppableWorkersParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sw := NewStoppableWorkers(parent, func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})
	cancel()
	<-done
	sw.Stop()
}

func TestStoppableWorkersPanic(t *testing.T) {
	sw := NewStoppableWorkers(context.Background(), func(ctx context.Context) {
		panic("worker failure")
	})
	sw.Stop()
}
