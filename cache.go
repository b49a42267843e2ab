package aether

import (
	"log"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of compiled programs kept by a ProgramCache
// unless configured otherwise.
const DefaultCacheSize = 8

// DefaultCache is shared by overlays created without an explicit cache.
var DefaultCache = NewProgramCache(DefaultCacheSize, nil)

// CacheStats is a snapshot of a ProgramCache's counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Failures  uint64
	Evictions uint64
}

// ProgramCache memoizes compiled programs by source string with
// least-recently-used eviction. It is safe for concurrent use, and concurrent
// misses on the same source compile once, so at most one Program exists per
// source at any time. Failed compilations are not cached.
type ProgramCache struct {
	programs *lru.Cache[string, *Program]
	compile  CompileFunc
	inflight singleflight.Group

	hits      atomic.Uint64
	misses    atomic.Uint64
	failures  atomic.Uint64
	evictions atomic.Uint64
}

// NewProgramCache creates a cache holding up to size programs (size <= 0 means
// DefaultCacheSize). A nil compile uses CompileKage.
func NewProgramCache(size int, compile CompileFunc) *ProgramCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if compile == nil {
		compile = CompileKage
	}
	c := &ProgramCache{compile: compile}
	programs, err := lru.NewWithEvict(size, func(_ string, p *Program) {
		c.evictions.Add(1)
		p.release()
	})
	if err != nil {
		// Only returned for non-positive sizes, which are ruled out above.
		panic("aether: " + err.Error())
	}
	c.programs = programs
	return c
}

// Get returns the program for src, compiling and inserting it on a miss.
// It returns nil when compilation fails; the failure is logged and the caller
// is expected to skip its shader layer.
func (c *ProgramCache) Get(src string) *Program {
	if p, ok := c.programs.Get(src); ok {
		c.hits.Add(1)
		return p
	}
	v, err, _ := c.inflight.Do(src, func() (any, error) {
		// A concurrent caller may have inserted while we waited for the group.
		if p, ok := c.programs.Get(src); ok {
			c.hits.Add(1)
			return p, nil
		}
		c.misses.Add(1)
		p, err := c.compile(src)
		if err != nil {
			return nil, err
		}
		c.programs.Add(src, p)
		return p, nil
	})
	if err != nil {
		c.failures.Add(1)
		log.Printf("aether: failed to compile shader: %v", err)
		return nil
	}
	return v.(*Program)
}

// Contains reports whether src is cached without updating recency.
func (c *ProgramCache) Contains(src string) bool {
	return c.programs.Contains(src)
}

// Len returns the number of cached programs.
func (c *ProgramCache) Len() int {
	return c.programs.Len()
}

// Purge evicts and releases every cached program.
func (c *ProgramCache) Purge() {
	c.programs.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *ProgramCache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Failures:  c.failures.Load(),
		Evictions: c.evictions.Load(),
	}
}
