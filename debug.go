package aether

import (
	"fmt"
	"os"
	"time"
)

// debugInterval spaces debug stats lines.
const debugInterval = time.Second

// debugStats is a point-in-time view of the pipeline, collected only when a
// Stack is in debug mode.
type debugStats struct {
	layers    int
	running   int
	liveTasks int
	redraws   uint64
	cache     CacheStats
	cached    int
}

func (s *Stack) collectStats() debugStats {
	st := debugStats{
		layers:    len(s.layers),
		liveTasks: int(liveTasks.Load()),
		redraws:   s.redraws.Swap(0),
		cache:     s.cache.Stats(),
		cached:    s.cache.Len(),
	}
	for _, l := range s.layers {
		if l.Running() {
			st.running++
		}
	}
	return st
}

// debugLog prints pipeline stats to stderr at most once per debugInterval.
func (s *Stack) debugLog() {
	if !s.debug {
		return
	}
	now := time.Now()
	if now.Sub(s.debugLast) < debugInterval {
		return
	}
	s.debugLast = now
	st := s.collectStats()
	_, _ = fmt.Fprintf(os.Stderr,
		"[aether] layers: %d | running: %d | live tasks: %d | redraw requests: %d\n",
		st.layers, st.running, st.liveTasks, st.redraws)
	_, _ = fmt.Fprintf(os.Stderr,
		"[aether] cache: %d cached | hits: %d | misses: %d | failures: %d | evictions: %d\n",
		st.cached, st.cache.Hits, st.cache.Misses, st.cache.Failures, st.cache.Evictions)
}
