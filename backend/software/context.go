// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"

	"github.com/gogpu/compositor/backend"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/parallel"
)

func init() {
	backend.Register(backend.Software, func(cfg backend.Config) (gpu.Context, error) {
		return NewContext(
			WithMSAA(cfg.MSAA),
			WithFramebufferFetch(cfg.FramebufferFetch),
			WithReadFromResolve(cfg.ReadFromResolve),
			WithDeviceProvider(cfg.Device),
			WithWorkers(cfg.Workers),
		), nil
	})
}

// Context is a CPU device.
type Context struct {
	opts   options
	alloc  *allocator
	pool   *parallel.WorkerPool
	stats  Stats
	buffer int
}

// Stats counts work the context executed.
type Stats struct {
	CommandBuffers int
	RenderPasses   int
	BlitPasses     int
	Draws          int
	Fragments      int
}

// NewContext creates a CPU device.
func NewContext(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{opts: o}
	c.alloc = &allocator{ctx: c}
	if o.workers > 1 {
		c.pool = parallel.NewWorkerPool(o.workers)
	}
	return c
}

// Close stops the shading workers. The context shades on the calling
// goroutine afterwards.
func (c *Context) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

// BackendType implements gpu.Context.
func (c *Context) BackendType() gpu.BackendType { return c.opts.backend }

// Capabilities implements gpu.Context.
func (c *Context) Capabilities() gpu.Capabilities { return c.opts.caps }

// Allocator implements gpu.Context.
func (c *Context) Allocator() gpu.Allocator { return c.alloc }

// Device returns the host device passed with WithDeviceProvider, or nil.
func (c *Context) Device() gpu.DeviceProvider { return c.opts.device }

// CreateCommandBuffer implements gpu.Context.
func (c *Context) CreateCommandBuffer() (gpu.CommandBuffer, error) {
	c.buffer++
	return &commandBuffer{ctx: c, label: fmt.Sprintf("CommandBuffer %d", c.buffer)}, nil
}

// Stats returns counters of submitted work.
func (c *Context) Stats() Stats { return c.stats }

type allocator struct {
	ctx *Context
}

func (a *allocator) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if m := a.ctx.opts.caps.MaxTextureSize; m > 0 && (desc.Size.Width > m || desc.Size.Height > m) {
		return nil, fmt.Errorf("%w: %q %dx%d exceeds %d", gpu.ErrAllocation, desc.Label, desc.Size.Width, desc.Size.Height, m)
	}
	if gpu.IsStencilFormat(desc.Format) {
		return newStencilTexture(desc), nil
	}
	return newTexture(desc), nil
}

var _ gpu.Context = (*Context)(nil)
