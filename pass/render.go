// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// checkerboardSquareSize is the square size of the offscreen checkerboard.
const checkerboardSquareSize = 8

// Status is the outcome of preparing an element for drawing.
type Status uint8

const (
	// StatusSuccess means the element produced an entity to draw.
	StatusSuccess Status = iota
	// StatusFailure aborts the render.
	StatusFailure
	// StatusSkip means the element has nothing to draw.
	StatusSkip
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusSkip:
		return "Skip"
	default:
		return "Unknown"
	}
}

// EntityResult is an element resolved to the entity that draws it.
type EntityResult struct {
	Entity *entity.Entity
	Status Status
	// Hint limits the work of the contents, or is nil.
	Hint *geom.Rect
	Err  error
}

func success(e *entity.Entity) EntityResult { return EntityResult{Entity: e, Status: StatusSuccess} }

func skip() EntityResult { return EntityResult{Status: StatusSkip} }

func failure(err error) EntityResult { return EntityResult{Status: StatusFailure, Err: err} }

// ClipCoverageLayer is one active clip: the area still visible, in root
// pass coordinates, and the stencil depth inside it. A nil Coverage means
// nothing is visible.
type ClipCoverageLayer struct {
	Coverage  *geom.Rect
	ClipDepth uint32
}

// ClipCoverageStack holds the active clips, innermost last.
type ClipCoverageStack []ClipCoverageLayer

func (s ClipCoverageStack) top() ClipCoverageLayer { return s[len(s)-1] }

// renderParams is the state of one OnRender call.
type renderParams struct {
	rootSize geom.ISize
	target   *EntityPassTarget
	// global is the position of the target in the root pass; local is its
	// position in the parent target.
	global, local geom.Point
	depth         int
	clips         *ClipCoverageStack
	clipFloor     uint32
	backdrop      entity.Contents
	// parent is set when the pass is collapsed into the context of its
	// parent.
	parent *InlinePassContext
}

// Render draws the pass tree into target.
//
// When some pass reads back its own target, the tree is rendered into an
// offscreen target first and copied into target at the end. Otherwise the
// tree is rendered directly, with the leading full-target draws folded into
// the clear color of target.
func (p *EntityPass) Render(r *entity.ContentContext, target gpu.RenderTarget) error {
	alloc := r.Allocator()
	alloc.Start()
	defer func() {
		r.GlyphAtlas().ResetTextFrames()
		alloc.End()
	}()

	if target.Color.Texture == nil {
		compositor.Logger().Error("pass: root render target has no color texture")
		return fmt.Errorf("%w: missing color texture", ErrRenderTarget)
	}
	p.populateGlyphAtlas(r)

	size := target.Size()
	clips := ClipCoverageStack{{Coverage: geom.RectPtr(geom.MakeSize(size))}}

	if p.TotalPassReads(r) > 0 {
		return p.renderOffscreenRoot(r, target, &clips)
	}

	if !target.HasStencil() {
		st, err := createStencil(r, target)
		if err != nil {
			return err
		}
		target.Stencil = st
	}
	target.Color.ClearColor = gpu.ClearColor(p.ClearColorOrDefault(size))
	return p.onRender(r, renderParams{
		rootSize: size,
		target:   NewEntityPassTarget(target, r.Capabilities().SupportsReadFromResolve),
		clips:    &clips,
	})
}

func (p *EntityPass) renderOffscreenRoot(r *entity.ContentContext, root gpu.RenderTarget, clips *ClipCoverageStack) error {
	size := root.Size()
	off, err := createRenderTarget(r, size, p.requiredMipCount, p.ClearColorOrDefault(size))
	if err != nil {
		return err
	}
	if err := p.onRender(r, renderParams{rootSize: size, target: off, clips: clips}); err != nil {
		return err
	}

	ctx := r.Context()
	cb, err := ctx.CreateCommandBuffer()
	if err != nil {
		compositor.Logger().Error("pass: could not create root command buffer", "err", err)
		return fmt.Errorf("%w: %w", ErrCommandBuffer, err)
	}
	cb.SetLabel("EntityPass Root Command Buffer")
	src := off.RenderTarget().RenderTargetTexture()

	if r.Capabilities().SupportsTextureToTextureBlits && ctx.BackendType() != gpu.BackendOpenGLES {
		blit, err := cb.CreateBlitPass()
		if err != nil {
			return fmt.Errorf("%w: root blit: %w", ErrCommandBuffer, err)
		}
		blit.SetLabel("EntityPass Root Blit Pass")
		if err := blit.AddCopy(src, root.RenderTargetTexture()); err != nil {
			return fmt.Errorf("%w: root blit: %w", ErrCommandBuffer, err)
		}
		if err := blit.EncodeCommands(); err != nil {
			return fmt.Errorf("%w: root blit: %w", ErrCommandBuffer, err)
		}
	} else {
		if !root.HasStencil() {
			st, err := createStencil(r, root)
			if err != nil {
				return err
			}
			root.Stencil = st
		}
		rp, err := cb.CreateRenderPass(root)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRenderTarget, err)
		}
		rp.SetLabel("EntityPass Root Render Pass")
		e := entity.New(contents.NewTexture(src, geom.MakeSize(size)))
		e.BlendMode = geom.BlendModeSource
		rp.SetCommandLabel("Root pass blit")
		if err := e.Render(r, rp); err != nil {
			compositor.Logger().Error("pass: could not render root blit", "err", err)
			return fmt.Errorf("pass: root blit: %w", err)
		}
		if err := rp.EncodeCommands(); err != nil {
			return fmt.Errorf("%w: root pass: %w", ErrCommandBuffer, err)
		}
	}
	if err := cb.Submit(); err != nil {
		return fmt.Errorf("%w: root submit: %w", ErrCommandBuffer, err)
	}
	return nil
}

// createRenderTarget allocates an offscreen target for a pass, multisampled
// when the device allows it.
func createRenderTarget(r *entity.ContentContext, size geom.ISize, mipCount int, clear geom.Color) (*EntityPassTarget, error) {
	ctx := r.Context()
	caps := r.Capabilities()
	if ctx.BackendType() == gpu.BackendOpenGLES {
		mipCount = 1
	}
	var (
		rt  gpu.RenderTarget
		err error
	)
	if caps.SupportsOffscreenMSAA {
		rt, err = r.Allocator().CreateOffscreenMSAA(ctx, "EntityPass", size, mipCount, true)
	} else {
		rt, err = r.Allocator().CreateOffscreen(ctx, "EntityPass", size, mipCount, true)
	}
	if err != nil {
		compositor.Logger().Error("pass: could not allocate offscreen target", "size", size, "err", err)
		return nil, fmt.Errorf("pass: offscreen target: %w", err)
	}
	rt.Color.ClearColor = gpu.ClearColor(clear)
	return NewEntityPassTarget(rt, caps.SupportsReadFromResolve), nil
}

// createStencil allocates a transient stencil attachment matching the
// color attachment of t.
func createStencil(r *entity.ContentContext, t gpu.RenderTarget) (*gpu.StencilAttachment, error) {
	tex, err := r.Context().Allocator().CreateTexture(gpu.TextureDescriptor{
		Label:       "Onscreen Stencil",
		Size:        t.Size(),
		Format:      r.Capabilities().DefaultStencilFormat,
		MipCount:    1,
		SampleCount: t.SampleCount(),
		StorageMode: gpu.StorageDeviceTransient,
		Usage:       gpu.UsageRenderTarget,
	})
	if err != nil {
		return nil, fmt.Errorf("pass: onscreen stencil: %w", err)
	}
	return &gpu.StencilAttachment{
		Texture:     tex,
		LoadAction:  gpu.LoadClear,
		StoreAction: gpu.StoreDontCare,
	}, nil
}

func (p *EntityPass) onRender(r *entity.ContentContext, prm renderParams) error {
	if n := len(p.activeClips); n > 0 {
		compositor.Logger().Warn("pass: rendering a pass with unpopped clips", "clips", n)
	}

	var ctx *InlinePassContext
	if prm.parent != nil {
		ctx = prm.parent.collapsed()
	} else {
		if !prm.target.IsValid() {
			return fmt.Errorf("%w: missing color texture", ErrRenderTarget)
		}
		ctx = NewInlinePassContext(r, prm.target, p.TotalPassReads(r))
	}
	collapsed := ctx.IsCollapsed()

	clearSize := prm.target.RenderTarget().Size()
	if !collapsed {
		if _, ok := p.clearColor(clearSize, prm.global); ok {
			// A cleared target needs a pass even when every element was
			// folded into the clear color.
			if _, err := ctx.beginPass(prm.depth); err != nil {
				return err
			}
		}
	}

	if p.backdropFilter != nil {
		if prm.backdrop == nil {
			compositor.Logger().Error("pass: backdrop filter without backdrop contents, rendering without it")
		} else {
			be := entity.New(prm.backdrop)
			be.Transform = geom.TranslatePoint(prm.local.Neg())
			be.ClipDepth = prm.clipFloor
			if err := p.renderElement(r, success(be), ctx, prm); err != nil {
				return err
			}
		}
	}

	if p.checkerboard && !collapsed && prm.depth > 0 {
		rp, err := ctx.beginPass(prm.depth)
		if err != nil {
			return err
		}
		cb := entity.New(contents.NewCheckerboard(checkerboardColor(prm.depth), checkerboardSquareSize))
		if err := cb.Render(r, rp); err != nil {
			return fmt.Errorf("pass: checkerboard: %w", err)
		}
	}

	collapsingClear := !collapsed && p.backdropFilter == nil
	for _, el := range p.elements {
		if collapsingClear {
			if e := el.Entity(); e != nil {
				if _, ok := backgroundColor(e, clearSize, prm.global); ok {
					continue
				}
			}
			collapsingClear = false
		}

		res := p.entityForElement(r, el, ctx, prm)
		switch res.Status {
		case StatusFailure:
			return res.Err
		case StatusSkip:
			continue
		}

		if res.Entity.BlendMode.IsAdvanced() {
			if err := p.applyAdvancedBlend(r, &res, ctx); err != nil {
				return err
			}
		}
		if err := p.renderElement(r, res, ctx, prm); err != nil {
			return err
		}
	}
	return ctx.finish()
}

// applyAdvancedBlend rewrites an advanced blend into contents that read the
// destination themselves, drawn with Source.
func (p *EntityPass) applyAdvancedBlend(r *entity.ContentContext, res *EntityResult, ctx *InlinePassContext) error {
	e := res.Entity
	if r.Capabilities().SupportsFramebufferFetch {
		e.Contents = contents.NewFramebufferBlend(e.Contents, e.BlendMode)
		e.BlendMode = geom.BlendModeSource
		return nil
	}

	// The blend samples the target, so everything drawn so far has to be
	// submitted first.
	if err := ctx.EndPass(); err != nil {
		compositor.Logger().Error("pass: could not end the pass for an advanced blend", "err", err)
		return err
	}
	tex := ctx.Texture()
	if tex == nil {
		return fmt.Errorf("%w: no texture to blend with", ErrRenderTarget)
	}
	res.Hint = geom.OptionalRect(e.Coverage())
	e.Contents = contents.NewBlend([]contents.FilterInput{
		contents.InputFromTexture(tex, e.Transform.Invert()),
		contents.InputFromContents(e.Contents),
	}, e.BlendMode, nil)
	e.BlendMode = geom.BlendModeSource
	return nil
}

// entityForElement resolves el to the entity that draws it. Subpasses are
// either rendered inline into ctx, which yields Skip, or rendered into an
// offscreen target that the returned entity composites.
func (p *EntityPass) entityForElement(r *entity.ContentContext, el Element, ctx *InlinePassContext, prm renderParams) EntityResult {
	if e := el.Entity(); e != nil {
		e = e.Clone()
		if prm.global != (geom.Point{}) {
			e.Transform = geom.TranslatePoint(prm.global.Neg()).Multiply(e.Transform)
		}
		return success(e)
	}

	sub := el.Subpass()
	if sub.delegate.CanElide() {
		return skip()
	}

	if sub.backdropFilter == nil && sub.TotalPassReads(r) == 0 && sub.delegate.CanCollapseIntoParentPass(sub) {
		err := sub.onRender(r, renderParams{
			rootSize:  prm.rootSize,
			target:    ctx.target,
			global:    prm.global,
			depth:     prm.depth,
			clips:     prm.clips,
			clipFloor: prm.clipFloor,
			parent:    ctx,
		})
		if err != nil {
			return failure(err)
		}
		return skip()
	}

	var backdrop entity.Contents
	if sub.backdropFilter != nil {
		tex := ctx.Texture()
		if f := sub.backdropFilter(contents.InputFromTexture(tex, geom.Identity()), sub.transform.Basis(), contents.RenderingSubpass); f != nil {
			backdrop = f
		}
		// The backdrop must have passed through a cleared pass before it is
		// sampled.
		if _, err := ctx.beginPass(prm.depth); err != nil {
			return failure(err)
		}
		if err := ctx.EndPass(); err != nil {
			return failure(err)
		}
	}

	clip := prm.clips.top().Coverage
	if clip == nil {
		return skip()
	}
	limit, ok := geom.MakeOriginSize(prm.global, prm.target.RenderTarget().Size()).Intersection(*clip)
	if !ok {
		return skip()
	}
	if limit, ok = limit.Intersection(geom.MakeSize(prm.rootSize)); !ok {
		return skip()
	}

	cov := limit
	if !sub.floodClip && backdrop == nil {
		if cov, ok = p.SubpassCoverage(sub, &limit); !ok {
			return skip()
		}
	}
	cov = cov.RoundOut()
	size := cov.ISize()
	if size.IsEmpty() {
		return skip()
	}

	origin := cov.Origin()
	bg, _ := sub.clearColor(size, origin)
	target, err := createRenderTarget(r, size, sub.requiredMipCount, bg)
	if err != nil {
		return failure(err)
	}

	subClips := ClipCoverageStack{{Coverage: geom.RectPtr(cov), ClipDepth: sub.clipDepth}}
	err = sub.onRender(r, renderParams{
		rootSize:  prm.rootSize,
		target:    target,
		global:    origin,
		local:     origin.Sub(prm.global),
		depth:     prm.depth + 1,
		clips:     &subClips,
		clipFloor: sub.clipDepth,
		backdrop:  backdrop,
	})
	if err != nil {
		return failure(err)
	}

	// Flips during the subpass may have moved its result to another texture.
	tex := target.RenderTarget().RenderTargetTexture()
	c := sub.delegate.CreateContentsForSubpassTarget(tex, geom.TranslatePoint(prm.global.Neg()).Multiply(sub.transform))
	if c == nil {
		compositor.Logger().Error("pass: delegate created no contents for subpass target")
		return failure(ErrSubpassContents)
	}

	e := entity.New(c)
	e.Transform = geom.TranslatePoint(origin.Sub(prm.global))
	e.BlendMode = sub.blendMode
	e.ClipDepth = sub.clipDepth
	e.NewClipDepth = sub.newClipDepth
	return success(e)
}

// renderElement draws the entity of res into the active render pass and
// keeps the clip coverage stack in sync with the clips it draws.
func (p *EntityPass) renderElement(r *entity.ContentContext, res EntityResult, ctx *InlinePassContext, prm renderParams) error {
	rp, err := ctx.beginPass(prm.depth)
	if err != nil {
		return err
	}
	e := res.Entity
	clips := prm.clips

	// Entity transforms are relative to the pass target.
	current := clips.top().Coverage
	if current != nil {
		current = geom.RectPtr(current.Shift(prm.global.Neg()))
	}
	if !e.ShouldRender(current) {
		return nil
	}

	cc := e.ClipCoverage(current)
	if cc.Coverage != nil {
		cc.Coverage = geom.RectPtr(cc.Coverage.Shift(prm.global))
	}

	if h, ok := e.Contents.(entity.CoverageHinter); ok {
		h.SetCoverageHint(intersectHints(res.Hint, current))
	}

	switch cc.Type {
	case entity.ClipAppend:
		prev := clips.top().Coverage
		*clips = append(*clips, ClipCoverageLayer{Coverage: cc.Coverage, ClipDepth: e.ClipDepth + 1})
		if prev == nil {
			// Everything is clipped already; the stencil stays as is.
			return nil
		}
	case entity.ClipRestore:
		if clips.top().ClipDepth <= e.ClipDepth {
			return nil
		}
		front := (*clips)[0].ClipDepth
		idx := 0
		if e.ClipDepth > front {
			idx = int(e.ClipDepth - front)
		}
		if idx >= len(*clips) {
			idx = len(*clips) - 1
		}
		var restore *geom.Rect
		if idx+1 < len(*clips) {
			if c := (*clips)[idx+1].Coverage; c != nil {
				restore = geom.RectPtr(c.Shift(prm.global.Neg()))
			}
		}
		*clips = (*clips)[:idx+1]
		if clips.top().Coverage == nil {
			return nil
		}
		if rc, ok := e.Contents.(entity.ClipRestorer); ok {
			rc.SetRestoreCoverage(restore)
		}
	}

	if e.ClipDepth >= prm.clipFloor {
		e.ClipDepth -= prm.clipFloor
	} else {
		e.ClipDepth = 0
	}
	ctx.recorder.record(e, cc.Type)
	if err := e.Render(r, rp); err != nil {
		compositor.Logger().Error("pass: could not render entity", "err", err)
		return fmt.Errorf("pass: render entity: %w", err)
	}
	return nil
}

// intersectHints intersects two optional rects. Nil stands for no limit;
// disjoint hints give no limit as well.
func intersectHints(a, b *geom.Rect) *geom.Rect {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return geom.OptionalRect(a.Intersection(*b))
}
