package animation

import (
	"context"
	"sync"
)

// FutureState is the lifecycle of a Future. It starts Pending and settles
// once, to Resolved or Rejected.
type FutureState int

const (
	Pending FutureState = iota
	Resolved
	Rejected
)

// Future is the completion signal of one playback.
type Future struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// settle resolves the future when err is nil and rejects it otherwise. Only
// the first call has an effect.
func (f *Future) settle(err error) bool {
	settled := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Done is closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the rejection reason, or nil while pending or once resolved.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// State reports whether the future is pending, resolved or rejected.
func (f *Future) State() FutureState {
	select {
	case <-f.done:
		if f.err != nil {
			return Rejected
		}
		return Resolved
	default:
		return Pending
	}
}

// Wait blocks until the future settles or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
