package aether

import (
	"sync"
	"time"
)

// TickSource delivers one monotonically increasing nanosecond timestamp per
// displayed frame.
type TickSource interface {
	// Subscribe returns a channel receiving tick timestamps and a function
	// that stops delivery. The channel is never closed.
	Subscribe() (ticks <-chan int64, cancel func())
}

// Ticker is a TickSource driven by the host's draw loop: call Tick once per
// displayed frame (Ebitengine's Draw runs in step with the display). Delivery
// is latest-wins, so a subscriber that falls behind sees the newest timestamp
// instead of a backlog, and Tick never blocks the render goroutine.
type Ticker struct {
	mu    sync.Mutex
	subs  map[uint64]chan int64
	next  uint64
	start time.Time
	last  int64
}

// NewTicker returns a Ticker whose Now is measured from the moment of creation.
func NewTicker() *Ticker {
	return &Ticker{start: time.Now()}
}

// Now returns the nanoseconds elapsed since the ticker was created, read from
// the monotonic clock.
func (t *Ticker) Now() int64 {
	return int64(time.Since(t.start))
}

// Subscribe implements TickSource.
func (t *Ticker) Subscribe() (<-chan int64, func()) {
	ch := make(chan int64, 1)
	t.mu.Lock()
	if t.subs == nil {
		t.subs = make(map[uint64]chan int64)
	}
	id := t.next
	t.next++
	t.subs[id] = ch
	t.mu.Unlock()
	return ch, func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Tick publishes nanos to every subscriber. Timestamps older than the last
// published one are dropped to keep the stream monotonic.
func (t *Ticker) Tick(nanos int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if nanos < t.last {
		return
	}
	t.last = nanos
	for _, ch := range t.subs {
		select {
		case ch <- nanos:
		default:
			// Replace the stale pending tick.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- nanos:
			default:
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (t *Ticker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}
