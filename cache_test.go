package aether

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// --- ProgramCache ---

func TestCacheReturnsSameProgram(t *testing.T) {
	c := newCompiler()
	cache := NewProgramCache(8, c.compile)

	p1 := cache.Get(testShaderSrc)
	p2 := cache.Get(testShaderSrc)
	if p1 == nil {
		t.Fatal("Get returned nil")
	}
	if p1 != p2 {
		t.Error("second Get returned a different program")
	}
	if n := c.count(testShaderSrc); n != 1 {
		t.Errorf("compilations = %d, want 1", n)
	}
	st := cache.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit and 1 miss", st)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newCompiler()
	cache := NewProgramCache(8, c.compile)

	srcs := make([]string, 9)
	for i := range srcs {
		srcs[i] = shaderVariant(fmt.Sprintf("s%d", i))
	}
	for _, s := range srcs[:8] {
		cache.Get(s)
	}
	// Touch the first so the second becomes the eldest.
	cache.Get(srcs[0])
	cache.Get(srcs[8])

	if cache.Len() != 8 {
		t.Errorf("Len = %d, want 8", cache.Len())
	}
	if cache.Contains(srcs[1]) {
		t.Error("least recently used source still cached")
	}
	if !cache.Contains(srcs[0]) {
		t.Error("recently used source was evicted")
	}
	if st := cache.Stats(); st.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", st.Evictions)
	}

	cache.Get(srcs[1])
	if n := c.count(srcs[1]); n != 2 {
		t.Errorf("evicted source compilations = %d, want 2", n)
	}
}

func TestCacheDefaultSize(t *testing.T) {
	c := newCompiler()
	cache := NewProgramCache(0, c.compile)
	for i := 0; i < DefaultCacheSize+3; i++ {
		cache.Get(shaderVariant(fmt.Sprint(i)))
	}
	if cache.Len() != DefaultCacheSize {
		t.Errorf("Len = %d, want %d", cache.Len(), DefaultCacheSize)
	}
}

func TestCacheFailureNotCached(t *testing.T) {
	bad := shaderVariant("bad")
	c := newCompiler(bad)
	cache := NewProgramCache(8, c.compile)

	if p := cache.Get(bad); p != nil {
		t.Fatal("Get of failing source returned a program")
	}
	if cache.Contains(bad) {
		t.Error("failed source was cached")
	}
	cache.Get(bad)
	if n := c.count(bad); n != 2 {
		t.Errorf("compilations = %d, want 2", n)
	}
	if st := cache.Stats(); st.Failures != 2 {
		t.Errorf("Failures = %d, want 2", st.Failures)
	}
}

func TestCacheConcurrentGetCompilesOnce(t *testing.T) {
	c := newCompiler()
	c.delay = 10 * time.Millisecond
	cache := NewProgramCache(8, c.compile)

	const n = 32
	got := make([]*Program, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = cache.Get(testShaderSrc)
		}(i)
	}
	wg.Wait()

	if n := c.count(testShaderSrc); n != 1 {
		t.Errorf("compilations = %d, want 1", n)
	}
	for i, p := range got {
		if p == nil || p != got[0] {
			t.Fatalf("goroutine %d got %p, want %p", i, p, got[0])
		}
	}
}

func TestCachePurge(t *testing.T) {
	c := newCompiler()
	cache := NewProgramCache(8, c.compile)
	cache.Get(shaderVariant("a"))
	cache.Get(shaderVariant("b"))
	cache.Purge()
	if cache.Len() != 0 {
		t.Errorf("Len after Purge = %d, want 0", cache.Len())
	}
	if st := cache.Stats(); st.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", st.Evictions)
	}
}
