package aether

import (
	"context"
	"sync/atomic"
)

// vsyncSlackNanos tolerates display jitter when comparing tick spacing to the
// skip interval. Without it a 120 Hz display, whose two-frame spacing is one
// nanosecond short of the 60 fps interval, would settle at 40 updates/s.
const vsyncSlackNanos int64 = 1_000_000

// liveTasks counts scheduler goroutines across all overlays (debug stats).
var liveTasks atomic.Int32

// throttle turns an unbounded tick stream into the tier's target cadence.
type throttle struct {
	skip     int64
	last     int64
	accepted bool
}

func newThrottle(q Quality) throttle {
	return throttle{skip: q.SkipInterval()}
}

// accept reports whether a tick at nanos should produce a frame. The first
// tick is always accepted.
func (t *throttle) accept(nanos int64) bool {
	if t.accepted && nanos-t.last < t.skip-vsyncSlackNanos {
		return false
	}
	t.last = nanos
	t.accepted = true
	return true
}

// frameFunc receives accepted ticks tagged with the generation of the task
// that produced them.
type frameFunc func(gen uint64, nanos int64)

// task is one running animation goroutine.
type task struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// scheduler owns at most one task. Callers serialize start and stop.
type scheduler struct {
	task *task
	live atomic.Int32
}

// start launches a task parked on src. Any previous task is stopped first.
func (s *scheduler) start(src TickSource, q Quality, gen uint64, onFrame frameFunc) {
	s.stop()
	ctx, cancel := context.WithCancel(context.Background())
	ticks, unsubscribe := src.Subscribe()
	t := &task{gen: gen, cancel: cancel, done: make(chan struct{})}
	s.task = t
	s.live.Add(1)
	liveTasks.Add(1)
	go func() {
		defer close(t.done)
		defer liveTasks.Add(-1)
		defer s.live.Add(-1)
		defer unsubscribe()
		th := newThrottle(q)
		for {
			select {
			case <-ctx.Done():
				return
			case nanos := <-ticks:
				// Cancellation wins over a tick that raced it.
				if ctx.Err() != nil {
					return
				}
				if th.accept(nanos) {
					onFrame(gen, nanos)
				}
			}
		}
	}()
}

// stop cancels the current task and waits for its goroutine to exit, so no
// frame from it can land afterwards.
func (s *scheduler) stop() {
	t := s.task
	if t == nil {
		return
	}
	s.task = nil
	t.cancel()
	<-t.done
}

// running reports whether a task is active.
func (s *scheduler) running() bool {
	return s.task != nil
}

// liveCount returns the number of this scheduler's goroutines still running.
func (s *scheduler) liveCount() int {
	return int(s.live.Load())
}
