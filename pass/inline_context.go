// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// RenderPassResult is the render pass an InlinePassContext draws into.
type RenderPassResult struct {
	// JustCreated is set when the pass was created by this call.
	JustCreated bool
	Pass        gpu.RenderPass
	// BackdropTexture holds the contents of the target before the pass
	// started when they have to be redrawn into it.
	BackdropTexture gpu.Texture
}

// InlinePassContext owns the render pass an EntityPass draws into. A pass
// may need several render passes to reach the end of its elements, one
// after every read of its own target.
//
// A collapsed context draws into the render pass of its parent.
type InlinePassContext struct {
	r          *entity.ContentContext
	target     *EntityPassTarget
	totalReads int
	parent     *InlinePassContext

	cb        gpu.CommandBuffer
	pass      gpu.RenderPass
	passCount int

	recorder *clipRecorder
}

// NewInlinePassContext creates a context drawing into target. totalReads
// is the number of times the pass reads its own target.
func NewInlinePassContext(r *entity.ContentContext, target *EntityPassTarget, totalReads int) *InlinePassContext {
	return &InlinePassContext{r: r, target: target, totalReads: totalReads, recorder: &clipRecorder{}}
}

// collapsed returns a context sharing the render pass of parent.
func (c *InlinePassContext) collapsed() *InlinePassContext {
	return &InlinePassContext{r: c.r, target: c.target, parent: c, recorder: c.recorder}
}

// IsCollapsed reports whether the context draws into its parent's pass.
func (c *InlinePassContext) IsCollapsed() bool { return c.parent != nil }

// IsActive reports whether a render pass is open.
func (c *InlinePassContext) IsActive() bool {
	if c.parent != nil {
		return c.parent.IsActive()
	}
	return c.pass != nil
}

// Texture returns the texture the target resolves into.
func (c *InlinePassContext) Texture() gpu.Texture {
	return c.target.RenderTarget().RenderTargetTexture()
}

// PassCount returns the number of render passes started so far.
func (c *InlinePassContext) PassCount() int {
	if c.parent != nil {
		return c.parent.PassCount()
	}
	return c.passCount
}

// RenderPass returns the open render pass, starting one when none is open.
// depth labels the command buffer and pass.
func (c *InlinePassContext) RenderPass(depth int) (RenderPassResult, error) {
	if c.parent != nil {
		return c.parent.RenderPass(depth)
	}
	if c.pass != nil {
		return RenderPassResult{Pass: c.pass}, nil
	}

	ctx := c.r.Context()
	cb, err := ctx.CreateCommandBuffer()
	if err != nil {
		compositor.Logger().Error("pass: could not create command buffer", "err", err)
		return RenderPassResult{}, fmt.Errorf("%w: %w", ErrCommandBuffer, err)
	}
	cb.SetLabel(fmt.Sprintf("EntityPass Command Buffer: Depth=%d Count=%d", depth, c.passCount))

	var res RenderPassResult
	rt := c.target.RenderTarget()
	if c.passCount > 0 && rt.Color.ResolveTexture != nil {
		tex, err := c.target.Flip(ctx.Allocator())
		if err != nil {
			return RenderPassResult{}, err
		}
		res.BackdropTexture = tex
		rt = c.target.RenderTarget()
	}

	msaa := rt.Color.ResolveTexture != nil
	switch {
	case c.passCount == 0:
		rt.Color.LoadAction = gpu.LoadClear
	case msaa:
		rt.Color.LoadAction = gpu.LoadDontCare
	default:
		rt.Color.LoadAction = gpu.LoadLoad
	}
	if msaa {
		rt.Color.StoreAction = gpu.StoreMultisampleResolve
	} else {
		rt.Color.StoreAction = gpu.StoreStore
	}

	if !rt.HasStencil() {
		compositor.Logger().Error("pass: render target has no stencil attachment")
		return RenderPassResult{}, fmt.Errorf("%w: missing stencil attachment", ErrRenderTarget)
	}
	stencil := *rt.Stencil
	if c.passCount == 0 || res.BackdropTexture != nil {
		stencil.LoadAction = gpu.LoadClear
	} else {
		stencil.LoadAction = gpu.LoadLoad
	}
	if c.passCount == c.totalReads {
		stencil.StoreAction = gpu.StoreDontCare
	} else {
		stencil.StoreAction = gpu.StoreStore
	}
	rt.Stencil = &stencil
	c.target.set(rt)

	pass, err := cb.CreateRenderPass(rt)
	if err != nil {
		compositor.Logger().Error("pass: could not create render pass", "err", err)
		return RenderPassResult{}, fmt.Errorf("%w: %w", ErrRenderTarget, err)
	}
	pass.SetLabel(fmt.Sprintf("EntityPass Render Pass: Depth=%d Count=%d", depth, c.passCount))

	c.cb, c.pass = cb, pass
	c.passCount++
	res.JustCreated = true
	res.Pass = pass
	return res, nil
}

// beginPass returns the open render pass like RenderPass. A new pass that
// lost the contents of the target is restored first: the backdrop texture
// is redrawn and the recorded clips are replayed into the cleared stencil.
func (c *InlinePassContext) beginPass(depth int) (gpu.RenderPass, error) {
	res, err := c.RenderPass(depth)
	if err != nil {
		return nil, err
	}
	if res.BackdropTexture == nil {
		return res.Pass, nil
	}
	backdrop := entity.New(backdropTexture(res.BackdropTexture))
	backdrop.BlendMode = geom.BlendModeSource
	res.Pass.SetCommandLabel("MSAA backdrop")
	if err := backdrop.Render(c.r, res.Pass); err != nil {
		return nil, fmt.Errorf("pass: restore backdrop: %w", err)
	}
	if err := c.recorder.replay(c.r, res.Pass); err != nil {
		return nil, fmt.Errorf("pass: replay clips: %w", err)
	}
	return res.Pass, nil
}

// EndPass encodes and submits the open render pass. Targets with more than
// one mip level get their mipmaps generated.
func (c *InlinePassContext) EndPass() error {
	if c.parent != nil {
		return ErrCollapsed
	}
	if c.pass == nil {
		return nil
	}
	pass, cb := c.pass, c.cb
	c.pass, c.cb = nil, nil

	if err := pass.EncodeCommands(); err != nil {
		return fmt.Errorf("%w: encode: %w", ErrCommandBuffer, err)
	}
	if tex := c.Texture(); tex != nil && tex.Descriptor().MipCount > 1 {
		blit, err := cb.CreateBlitPass()
		if err != nil {
			compositor.Logger().Error("pass: could not create blit pass", "err", err)
			return fmt.Errorf("%w: %w", ErrCommandBuffer, err)
		}
		blit.SetLabel("EntityPass Mipmap Blit Pass")
		if err := blit.GenerateMipmap(tex); err != nil {
			return fmt.Errorf("%w: mipmap: %w", ErrCommandBuffer, err)
		}
		if err := blit.EncodeCommands(); err != nil {
			return fmt.Errorf("%w: encode blit: %w", ErrCommandBuffer, err)
		}
	}
	if err := cb.Submit(); err != nil {
		return fmt.Errorf("%w: submit: %w", ErrCommandBuffer, err)
	}
	return nil
}

// finish ends the open pass unless the context is collapsed.
func (c *InlinePassContext) finish() error {
	if c.parent != nil {
		return nil
	}
	return c.EndPass()
}
