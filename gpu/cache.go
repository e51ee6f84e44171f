// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
)

// RenderTargetCache is a RenderTargetAllocator that recycles targets across
// frames.
//
// Between Start and End, a request is served by any cached target with an
// equal config that has not been handed out yet in the current frame.
// Targets not used during a frame are dropped at End.
//
// The cache is not safe for concurrent use. One Render call owns it for its
// duration.
type RenderTargetCache struct {
	entries []*cacheEntry
	inFrame bool

	hits      uint64
	misses    uint64
	evictions uint64
}

type cacheEntry struct {
	config RenderTargetConfig
	target RenderTarget
	used   bool
}

// CacheStats reports cache activity.
type CacheStats struct {
	// Entries is the number of cached targets.
	Entries int
	// Hits is the number of requests served from the cache.
	Hits uint64
	// Misses is the number of requests that allocated.
	Misses uint64
	// Evictions is the number of targets dropped at End.
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any request.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewRenderTargetCache creates an empty cache.
func NewRenderTargetCache() *RenderTargetCache {
	return &RenderTargetCache{}
}

// Start begins a frame.
func (c *RenderTargetCache) Start() {
	c.inFrame = true
	for _, e := range c.entries {
		e.used = false
	}
}

// End finishes a frame and evicts targets the frame did not use.
func (c *RenderTargetCache) End() {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.used {
			kept = append(kept, e)
			continue
		}
		c.evictions++
	}
	for i := len(kept); i < len(c.entries); i++ {
		c.entries[i] = nil
	}
	c.entries = kept
	c.inFrame = false
	compositor.Logger().Debug("render target cache frame end",
		"entries", len(c.entries), "hits", c.hits, "misses", c.misses, "evictions", c.evictions)
}

// CreateOffscreen implements RenderTargetAllocator.
func (c *RenderTargetCache) CreateOffscreen(ctx Context, label string, size geom.ISize, mipCount int, stencil bool) (RenderTarget, error) {
	return c.get(ctx, label, RenderTargetConfig{
		Size:        size,
		MipCount:    max(1, mipCount),
		SampleCount: 1,
		ColorFormat: ctx.Capabilities().DefaultColorFormat,
		HasStencil:  stencil,
	})
}

// CreateOffscreenMSAA implements RenderTargetAllocator.
func (c *RenderTargetCache) CreateOffscreenMSAA(ctx Context, label string, size geom.ISize, mipCount int, stencil bool) (RenderTarget, error) {
	return c.get(ctx, label, RenderTargetConfig{
		Size:        size,
		MipCount:    max(1, mipCount),
		SampleCount: 4,
		ColorFormat: ctx.Capabilities().DefaultColorFormat,
		HasStencil:  stencil,
	})
}

func (c *RenderTargetCache) get(ctx Context, label string, cfg RenderTargetConfig) (RenderTarget, error) {
	if c.inFrame {
		for _, e := range c.entries {
			if !e.used && e.config == cfg {
				e.used = true
				c.hits++
				return resetTarget(e.target), nil
			}
		}
	}
	c.misses++
	t, err := CreateRenderTarget(ctx, label, cfg)
	if err != nil {
		return RenderTarget{}, err
	}
	if c.inFrame {
		c.entries = append(c.entries, &cacheEntry{config: cfg, target: t, used: true})
	}
	return t, nil
}

// resetTarget restores the default load and store actions of a cached
// target, since callers adjust them per use.
func resetTarget(t RenderTarget) RenderTarget {
	t.Color.LoadAction = LoadClear
	if t.Color.ResolveTexture != nil {
		t.Color.StoreAction = StoreMultisampleResolve
	} else {
		t.Color.StoreAction = StoreStore
	}
	t.Color.ClearColor = ClearColor(geom.Color{})
	if t.Stencil != nil {
		s := *t.Stencil
		s.LoadAction = LoadClear
		s.StoreAction = StoreDontCare
		s.ClearStencil = 0
		t.Stencil = &s
	}
	return t
}

// Len returns the number of cached targets.
func (c *RenderTargetCache) Len() int {
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *RenderTargetCache) Stats() CacheStats {
	return CacheStats{
		Entries:   len(c.entries),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

var (
	_ RenderTargetAllocator = (*RenderTargetCache)(nil)
	_ RenderTargetAllocator = BasicAllocator{}
)
