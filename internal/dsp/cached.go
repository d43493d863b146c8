package dsp

import (
	"sync"
)

// SpectralCache hands out Spectral instances keyed by row length.
// Building a gonum FFT plan allocates twiddle tables, so instances are
// pooled and reused across calls and goroutines. Each instance handed out
// is owned by the caller until Put.
type SpectralCache struct {
	mu    sync.RWMutex
	pools map[int]*sync.Pool
}

// NewSpectralCache creates an empty cache.
func NewSpectralCache() *SpectralCache {
	return &SpectralCache{pools: make(map[int]*sync.Pool)}
}

// Get returns a Spectral for rows of length n.
func (c *SpectralCache) Get(n int) *Spectral {
	return c.pool(n).Get().(*Spectral)
}

// Put returns s to the cache.
func (c *SpectralCache) Put(s *Spectral) {
	if s == nil {
		return
	}
	c.pool(s.Len()).Put(s)
}

// Sizes returns the number of distinct row lengths seen so far.
func (c *SpectralCache) Sizes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pools)
}

func (c *SpectralCache) pool(n int) *sync.Pool {
	c.mu.RLock()
	p, ok := c.pools[n]
	c.mu.RUnlock()
	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok = c.pools[n]; ok {
		return p
	}
	p = &sync.Pool{New: func() any { return NewSpectral(n) }}
	c.pools[n] = p
	return p
}

var defaultCache = NewSpectralCache()

// DefaultCache returns the process-wide SpectralCache.
func DefaultCache() *SpectralCache { return defaultCache }
