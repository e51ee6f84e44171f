package entity

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/cache"
	"github.com/gogpu/compositor/text"
	"github.com/gogpu/gputypes"
)

// pipelineVariantCapacity bounds the number of pipeline variants kept.
const pipelineVariantCapacity = 512

// ContentContext is the renderer state shared by every contents draw of a
// render.
type ContentContext struct {
	ctx       gpu.Context
	allocator gpu.RenderTargetAllocator
	atlas     *text.LazyGlyphAtlas
	variants  *cache.Cache[gpu.PipelineDescriptor, gpu.PipelineDescriptor]
}

// ContentContextOption configures a ContentContext.
type ContentContextOption func(*ContentContext)

// WithRenderTargetAllocator sets the allocator for offscreen targets. The
// default is a gpu.RenderTargetCache.
func WithRenderTargetAllocator(a gpu.RenderTargetAllocator) ContentContextOption {
	return func(c *ContentContext) {
		if a != nil {
			c.allocator = a
		}
	}
}

// WithGlyphAtlas sets the glyph atlas text contents draw from.
func WithGlyphAtlas(a *text.LazyGlyphAtlas) ContentContextOption {
	return func(c *ContentContext) {
		if a != nil {
			c.atlas = a
		}
	}
}

// NewContentContext creates the renderer state for ctx.
func NewContentContext(ctx gpu.Context, opts ...ContentContextOption) *ContentContext {
	c := &ContentContext{
		ctx:       ctx,
		allocator: gpu.NewRenderTargetCache(),
		atlas:     text.NewLazyGlyphAtlas(),
		variants:  cache.New[gpu.PipelineDescriptor, gpu.PipelineDescriptor](pipelineVariantCapacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Context returns the device.
func (c *ContentContext) Context() gpu.Context { return c.ctx }

// Allocator returns the render target allocator.
func (c *ContentContext) Allocator() gpu.RenderTargetAllocator { return c.allocator }

// Capabilities returns the device capabilities.
func (c *ContentContext) Capabilities() gpu.Capabilities { return c.ctx.Capabilities() }

// GlyphAtlas returns the glyph atlas of the current render.
func (c *ContentContext) GlyphAtlas() *text.LazyGlyphAtlas { return c.atlas }

// SubpassCallback encodes the draws of an offscreen pass.
type SubpassCallback func(r *ContentContext, pass gpu.RenderPass) error

// MakeSubpass renders fn into a new offscreen target of the given size and
// submits it. Targets with more than one mip level get their mipmaps
// generated after the pass.
func (c *ContentContext) MakeSubpass(label string, size geom.ISize, fn SubpassCallback, msaa bool, mipCount int) (gpu.RenderTarget, error) {
	var (
		target gpu.RenderTarget
		err    error
	)
	if msaa && c.Capabilities().SupportsOffscreenMSAA {
		target, err = c.allocator.CreateOffscreenMSAA(c.ctx, label, size, mipCount, false)
	} else {
		target, err = c.allocator.CreateOffscreen(c.ctx, label, size, mipCount, false)
	}
	if err != nil {
		return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
	}

	cb, err := c.ctx.CreateCommandBuffer()
	if err != nil {
		return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
	}
	cb.SetLabel(label + " Command Buffer")

	pass, err := cb.CreateRenderPass(target)
	if err != nil {
		return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
	}
	pass.SetLabel(label + " Render Pass")
	if err := fn(c, pass); err != nil {
		return gpu.RenderTarget{}, err
	}
	if err := pass.EncodeCommands(); err != nil {
		return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
	}

	if mipCount > 1 {
		blit, err := cb.CreateBlitPass()
		if err != nil {
			return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
		}
		blit.SetLabel(label + " Mipmap Blit Pass")
		if err := blit.GenerateMipmap(target.RenderTargetTexture()); err != nil {
			return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
		}
		if err := blit.EncodeCommands(); err != nil {
			return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
		}
	}

	if err := cb.Submit(); err != nil {
		return gpu.RenderTarget{}, fmt.Errorf("%s: %w", label, err)
	}
	return target, nil
}

// Options are the pass- and draw-dependent parts of a pipeline variant.
type Options struct {
	SampleCount          int
	ColorFormat          gputypes.TextureFormat
	HasStencilAttachment bool
	BlendMode            geom.BlendMode
	StencilMode          gpu.StencilMode
	Primitive            gpu.Primitive
}

// OptionsFromPass returns the options matching the attachments of pass.
// Draws into passes without a stencil attachment ignore the stencil.
func OptionsFromPass(pass gpu.RenderPass) Options {
	t := pass.RenderTarget()
	o := Options{
		SampleCount:          t.SampleCount(),
		HasStencilAttachment: t.HasStencil(),
		BlendMode:            geom.BlendModeSourceOver,
		StencilMode:          gpu.StencilClipCompare,
	}
	if tex := t.Color.Texture; tex != nil {
		o.ColorFormat = tex.Descriptor().Format
	}
	if !o.HasStencilAttachment {
		o.StencilMode = gpu.StencilIgnore
	}
	return o
}

// OptionsFromPassAndEntity is OptionsFromPass with the blend mode of e.
func OptionsFromPassAndEntity(pass gpu.RenderPass, e *Entity) Options {
	o := OptionsFromPass(pass)
	o.BlendMode = e.BlendMode
	return o
}

// Pipeline returns the pipeline variant of kind for opts.
func (c *ContentContext) Pipeline(kind gpu.PipelineKind, opts Options) gpu.PipelineDescriptor {
	desc := gpu.PipelineDescriptor{
		Kind:                 kind,
		BlendMode:            opts.BlendMode,
		StencilMode:          opts.StencilMode,
		Primitive:            opts.Primitive,
		SampleCount:          opts.SampleCount,
		ColorFormat:          opts.ColorFormat,
		HasStencilAttachment: opts.HasStencilAttachment,
	}
	if !desc.HasStencilAttachment {
		desc.StencilMode = gpu.StencilIgnore
	}
	return c.variants.GetOrCreate(desc, func() gpu.PipelineDescriptor {
		compositor.Logger().Debug("pipeline variant created",
			"kind", kind, "blend", opts.BlendMode, "stencil", desc.StencilMode, "samples", opts.SampleCount)
		return desc
	})
}

// PipelineVariants returns the number of pipeline variants created so far.
func (c *ContentContext) PipelineVariants() int { return c.variants.Len() }
