package animation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// View is the runtime that applies steps to visual properties.
//
// Animate starts a step and returns at once; the channel yields nil (or is
// closed) when the step has finished, or an error. It is called with the
// group's lock held, so it must not block nor call back into the group.
// When ctx is cancelled the view should abandon the step.
type View interface {
	Animate(ctx context.Context, step Step) <-chan error
}

// playback is one in-flight run of a group.
type playback struct {
	future     *Future
	cancel     context.CancelFunc
	delay      time.Duration
	iterations int
}

// Play starts the group on v and returns a Future settled when every
// iteration has finished. The timeline is rebuilt on each call. Play never
// blocks: the delay and the steps run in their own goroutine.
//
// Play fails with ErrAlreadyPlaying if the group is playing. Cancelling ctx
// has the same effect as Cancel.
func (g *Group) Play(ctx context.Context, v View) (*Future, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.State() == StatePlaying {
		return nil, ErrAlreadyPlaying
	}

	steps := g.Timeline()
	ctx, cancel := context.WithCancel(ctx)
	p := &playback{
		future:     newFuture(),
		cancel:     cancel,
		delay:      g.Delay,
		iterations: g.Iterations,
	}
	g.current = p
	g.state.Store(int32(StatePlaying))

	g.log.Debug("Playing animation",
		zap.String("name", g.Name),
		zap.Int("steps", len(steps)),
		zap.Duration("delay", g.Delay),
		zap.Int("iterations", g.Iterations))

	go g.run(ctx, p, v, steps)
	return p.future, nil
}

// Cancel stops the playback in flight and rejects its Future with
// ErrAnimationCancelled. No further steps are started once Cancel returns.
// It reports whether a playback was cancelled.
func (g *Group) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finishLocked(g.current, StateCancelled, ErrAnimationCancelled)
}

func (g *Group) run(ctx context.Context, p *playback, v View, steps []Step) {
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			g.finish(p, StateCancelled, ErrAnimationCancelled)
			return
		case <-t.C:
		}
	}

	if len(steps) == 0 {
		g.finish(p, StateCompleted, nil)
		return
	}

	remaining := p.iterations
	for i := 0; ; i++ {
		if i == len(steps) {
			if remaining != Infinite {
				remaining--
			}
			if remaining <= 0 {
				g.finish(p, StateCompleted, nil)
				return
			}
			g.log.Debug("Repeating animation", zap.String("name", g.Name))
			i = 0
		}

		ch, ok := g.start(ctx, p, v, steps[i])
		if !ok {
			return
		}
		select {
		case err := <-ch:
			if err != nil {
				if ctx.Err() != nil {
					g.finish(p, StateCancelled, ErrAnimationCancelled)
				} else {
					g.finish(p, StateFailed, fmt.Errorf("animation %q step %d: %w", g.Name, i, err))
				}
				return
			}
		case <-ctx.Done():
			g.finish(p, StateCancelled, ErrAnimationCancelled)
			return
		}
	}
}

// start hands a step to the view unless the playback has been settled in the
// meantime.
func (g *Group) start(ctx context.Context, p *playback, v View, step Step) (<-chan error, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != p || g.State() != StatePlaying || ctx.Err() != nil {
		return nil, false
	}
	return v.Animate(ctx, step), true
}

func (g *Group) finish(p *playback, s State, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.finishLocked(p, s, err)
}

func (g *Group) finishLocked(p *playback, s State, err error) bool {
	if p == nil || g.current != p || g.State() != StatePlaying {
		return false
	}
	g.state.Store(int32(s))
	p.cancel()
	p.future.settle(err)

	switch s {
	case StateFailed:
		g.log.Warn("Animation failed", zap.String("name", g.Name), zap.Error(err))
	default:
		g.log.Debug("Animation finished", zap.String("name", g.Name), zap.Stringer("state", s))
	}
	return true
}
