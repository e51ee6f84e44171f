package recording

import (
	"errors"
	"fmt"

	"github.com/gogpu/compositor/gpu"
)

// ErrInjected is returned by operations failed on purpose.
var ErrInjected = errors.New("recording: injected failure")

// Context is a gpu.Context that records the work submitted through it.
type Context struct {
	inner gpu.Context
	alloc *allocator

	buffers  []*Buffer
	textures int

	failBuffersAfter  int
	failTexturesAfter int
}

// New wraps inner.
func New(inner gpu.Context, opts ...Option) *Context {
	c := &Context{inner: inner, failBuffersAfter: -1, failTexturesAfter: -1}
	for _, opt := range opts {
		opt(c)
	}
	c.alloc = &allocator{ctx: c}
	return c
}

// Inner returns the wrapped context.
func (c *Context) Inner() gpu.Context { return c.inner }

// BackendType implements gpu.Context.
func (c *Context) BackendType() gpu.BackendType { return c.inner.BackendType() }

// Capabilities implements gpu.Context.
func (c *Context) Capabilities() gpu.Capabilities { return c.inner.Capabilities() }

// Allocator implements gpu.Context.
func (c *Context) Allocator() gpu.Allocator { return c.alloc }

// CreateCommandBuffer implements gpu.Context.
func (c *Context) CreateCommandBuffer() (gpu.CommandBuffer, error) {
	if c.failBuffersAfter >= 0 && len(c.buffers) >= c.failBuffersAfter {
		return nil, fmt.Errorf("%w: command buffer %d", ErrInjected, len(c.buffers)+1)
	}
	inner, err := c.inner.CreateCommandBuffer()
	if err != nil {
		return nil, err
	}
	b := &Buffer{}
	c.buffers = append(c.buffers, b)
	return &commandBuffer{inner: inner, rec: b}, nil
}

// Recording returns the records captured so far. The records are shared
// with the context and keep growing as more work is encoded.
func (c *Context) Recording() *Recording {
	return &Recording{Buffers: append([]*Buffer(nil), c.buffers...)}
}

// TextureAllocations returns the number of successful texture allocations.
func (c *Context) TextureAllocations() int { return c.textures }

// Reset drops all records. Failure counters start over.
func (c *Context) Reset() {
	c.buffers = nil
	c.textures = 0
}

type allocator struct {
	ctx *Context
}

func (a *allocator) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	c := a.ctx
	if c.failTexturesAfter >= 0 && c.textures >= c.failTexturesAfter {
		return nil, fmt.Errorf("%w: texture %q", ErrInjected, desc.Label)
	}
	t, err := c.inner.Allocator().CreateTexture(desc)
	if err != nil {
		return nil, err
	}
	c.textures++
	return t, nil
}

type commandBuffer struct {
	inner gpu.CommandBuffer
	rec   *Buffer
}

func (b *commandBuffer) SetLabel(label string) {
	b.rec.Label = label
	b.inner.SetLabel(label)
}

func (b *commandBuffer) CreateRenderPass(target gpu.RenderTarget) (gpu.RenderPass, error) {
	inner, err := b.inner.CreateRenderPass(target)
	if err != nil {
		return nil, err
	}
	p := &Pass{
		Type:        PassRender,
		Target:      target,
		Size:        target.Size(),
		SampleCount: target.SampleCount(),
		HasStencil:  target.HasStencil(),
		ColorLoad:   target.Color.LoadAction,
		ColorStore:  target.Color.StoreAction,
		ClearColor:  gpu.ColorFromClear(target.Color.ClearColor),
	}
	if target.HasStencil() {
		p.StencilLoad = target.Stencil.LoadAction
	}
	b.rec.Passes = append(b.rec.Passes, p)
	return &renderPass{RenderPass: inner, rec: p}, nil
}

func (b *commandBuffer) CreateBlitPass() (gpu.BlitPass, error) {
	inner, err := b.inner.CreateBlitPass()
	if err != nil {
		return nil, err
	}
	p := &Pass{Type: PassBlit}
	b.rec.Passes = append(b.rec.Passes, p)
	return &blitPass{inner: inner, rec: p}, nil
}

func (b *commandBuffer) Submit() error {
	if err := b.inner.Submit(); err != nil {
		return err
	}
	b.rec.Submitted = true
	return nil
}

// renderPass forwards to the wrapped pass and shadows the sticky draw state.
type renderPass struct {
	gpu.RenderPass
	rec *Pass

	label    string
	pipeline gpu.PipelineDescriptor
	ref      uint32
	vertices int
	bindings gpu.Bindings
}

func (p *renderPass) SetLabel(label string) {
	p.rec.Label = label
	p.RenderPass.SetLabel(label)
}

func (p *renderPass) SetCommandLabel(label string) {
	p.label = label
	p.RenderPass.SetCommandLabel(label)
}

func (p *renderPass) SetPipeline(desc gpu.PipelineDescriptor) {
	p.pipeline = desc
	p.RenderPass.SetPipeline(desc)
}

func (p *renderPass) SetStencilReference(ref uint32) {
	p.ref = ref
	p.RenderPass.SetStencilReference(ref)
}

func (p *renderPass) SetVertexBuffer(vb gpu.VertexBuffer) {
	p.vertices = vb.VertexCount()
	p.RenderPass.SetVertexBuffer(vb)
}

func (p *renderPass) Bind(b gpu.Bindings) {
	p.bindings = b
	p.RenderPass.Bind(b)
}

func (p *renderPass) Draw() error {
	if err := p.RenderPass.Draw(); err != nil {
		return err
	}
	p.rec.Commands = append(p.rec.Commands, Command{
		Label:       p.label,
		Pipeline:    p.pipeline.Kind,
		BlendMode:   p.pipeline.BlendMode,
		StencilMode: p.pipeline.StencilMode,
		StencilRef:  p.ref,
		VertexCount: p.vertices,
		Color:       p.bindings.Fragment.Color,
	})
	p.label = ""
	return nil
}

func (p *renderPass) EncodeCommands() error {
	if err := p.RenderPass.EncodeCommands(); err != nil {
		return err
	}
	p.rec.Encoded = true
	return nil
}

type blitPass struct {
	inner gpu.BlitPass
	rec   *Pass
}

func (p *blitPass) SetLabel(label string) {
	p.rec.Label = label
	p.inner.SetLabel(label)
}

func (p *blitPass) AddCopy(src, dst gpu.Texture) error {
	if err := p.inner.AddCopy(src, dst); err != nil {
		return err
	}
	p.rec.Blits = append(p.rec.Blits, Blit{Op: BlitCopy, Src: src, Dst: dst})
	return nil
}

func (p *blitPass) GenerateMipmap(tex gpu.Texture) error {
	if err := p.inner.GenerateMipmap(tex); err != nil {
		return err
	}
	p.rec.Blits = append(p.rec.Blits, Blit{Op: BlitGenerateMipmap, Dst: tex})
	return nil
}

func (p *blitPass) EncodeCommands() error {
	if err := p.inner.EncodeCommands(); err != nil {
		return err
	}
	p.rec.Encoded = true
	return nil
}

var _ gpu.Context = (*Context)(nil)
