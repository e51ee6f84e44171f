// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/blend"
)

// EntityPass is an ordered list of entities and child passes with its own
// transform, blend mode and clip depth. A pass owns its elements; the
// superpass link is only used for upward queries.
type EntityPass struct {
	elements []Element
	// activeClips holds the element indices of clips awaiting their
	// restore depth.
	activeClips []int

	superpass *EntityPass

	transform    geom.Matrix
	clipDepth    uint32
	newClipDepth uint32
	blendMode    geom.BlendMode
	floodClip    bool
	checkerboard bool
	boundsLimit  *geom.Rect

	requiredMipCount int
	backdropFilter   BackdropFilterProc

	advancedBlendReads int
	backdropReads      int

	delegate Delegate
}

// New creates an empty pass with the identity transform and SourceOver
// blending.
func New() *EntityPass {
	return &EntityPass{
		transform:        geom.Identity(),
		newClipDepth:     1,
		blendMode:        geom.BlendModeSourceOver,
		requiredMipCount: 1,
		delegate:         DefaultDelegate{},
	}
}

// SetDelegate sets the compositing delegate. Nil is ignored.
func (p *EntityPass) SetDelegate(d Delegate) {
	if d != nil {
		p.delegate = d
	}
}

// Delegate returns the compositing delegate.
func (p *EntityPass) Delegate() Delegate { return p.delegate }

// AddEntity appends e. Opaque SourceOver draws become Source draws, and
// the clip depth of e is raised to the floor of the pass.
func (p *EntityPass) AddEntity(e *entity.Entity) {
	if e.Contents != nil && e.BlendMode == geom.BlendModeSourceOver && e.Contents.IsOpaque() {
		e.BlendMode = geom.BlendModeSource
	}
	if e.BlendMode.IsAdvanced() {
		p.advancedBlendReads++
	}
	if e.ClipDepth < p.clipDepth {
		e.ClipDepth = p.clipDepth
	}
	p.elements = append(p.elements, EntityElement(e))
}

// PushClip appends the clip entity e and records it until its depth is
// assigned by PopClips.
func (p *EntityPass) PushClip(e *entity.Entity) {
	p.AddEntity(e)
	p.activeClips = append(p.activeClips, len(p.elements)-1)
}

// PopClips assigns depth as the new clip depth of the n most recently
// pushed clips and forgets them.
func (p *EntityPass) PopClips(n int, depth uint32) {
	if n > len(p.activeClips) {
		compositor.Logger().Error("pass: more clips popped than pushed",
			"popped", n, "active", len(p.activeClips))
		n = len(p.activeClips)
	}
	for range n {
		last := len(p.activeClips) - 1
		idx := p.activeClips[last]
		p.activeClips = p.activeClips[:last]
		if e := p.elements[idx].Entity(); e != nil {
			e.NewClipDepth = depth
		}
	}
}

// PopAllClips pops every active clip with depth.
func (p *EntityPass) PopAllClips(depth uint32) {
	p.PopClips(len(p.activeClips), depth)
}

// ActiveClipCount returns the number of clips awaiting a depth.
func (p *EntityPass) ActiveClipCount() int { return len(p.activeClips) }

// AddSubpass appends sub as a child pass and returns it. A nil sub
// returns nil.
func (p *EntityPass) AddSubpass(sub *EntityPass) *EntityPass {
	if sub == nil {
		return nil
	}
	sub.superpass = p
	if sub.backdropFilter != nil {
		p.backdropReads++
	}
	if sub.blendMode.IsAdvanced() {
		p.advancedBlendReads++
	}
	p.elements = append(p.elements, SubpassElement(sub))
	return sub
}

// AddSubpassInline moves the elements of sub into p.
func (p *EntityPass) AddSubpassInline(sub *EntityPass) {
	if sub == nil {
		return
	}
	for _, el := range sub.elements {
		if s := el.Subpass(); s != nil {
			s.superpass = p
		}
	}
	p.elements = append(p.elements, sub.elements...)
	p.backdropReads += sub.backdropReads
	p.advancedBlendReads += sub.advancedBlendReads
	sub.elements = nil
}

// SetElements replaces the elements of p.
func (p *EntityPass) SetElements(els []Element) {
	p.elements = els
}

// Elements returns the elements in rendering order. The slice must not be
// modified.
func (p *EntityPass) Elements() []Element { return p.elements }

// ElementCount returns the number of direct elements.
func (p *EntityPass) ElementCount() int { return len(p.elements) }

// SubpassesDepth returns the number of pass levels in the tree rooted at
// p, counting p itself. A pass without subpasses has depth 1.
func (p *EntityPass) SubpassesDepth() int {
	d := 0
	for _, el := range p.elements {
		if s := el.Subpass(); s != nil {
			d = max(d, s.SubpassesDepth())
		}
	}
	return d + 1
}

// Superpass returns the parent pass, or nil for the root.
func (p *EntityPass) Superpass() *EntityPass { return p.superpass }

// IsRoot reports whether p has no parent.
func (p *EntityPass) IsRoot() bool { return p.superpass == nil }

// Transform returns the transform of the pass.
func (p *EntityPass) Transform() geom.Matrix { return p.transform }

// SetTransform sets the transform the pass is composited with.
func (p *EntityPass) SetTransform(m geom.Matrix) { p.transform = m }

// ClipDepth returns the clip depth floor of the pass.
func (p *EntityPass) ClipDepth() uint32 { return p.clipDepth }

// SetClipDepth sets the clip depth floor.
func (p *EntityPass) SetClipDepth(d uint32) { p.clipDepth = d }

// NewClipDepth returns the depth the composited pass is drawn at.
func (p *EntityPass) NewClipDepth() uint32 { return p.newClipDepth }

// SetNewClipDepth sets the depth the composited pass is drawn at.
func (p *EntityPass) SetNewClipDepth(d uint32) { p.newClipDepth = d }

// BlendMode returns the blend mode of the pass.
func (p *EntityPass) BlendMode() geom.BlendMode { return p.blendMode }

// SetBlendMode sets the blend mode the pass is composited with.
// Destructive modes make the pass cover its whole clip.
func (p *EntityPass) SetBlendMode(m geom.BlendMode) {
	p.blendMode = m
	p.floodClip = m.IsDestructive()
}

// BoundsLimit returns the bounds hint, or nil.
func (p *EntityPass) BoundsLimit() *geom.Rect { return p.boundsLimit }

// SetBoundsLimit limits the coverage of the pass to r in local space. Nil
// removes the limit.
func (p *EntityPass) SetBoundsLimit(r *geom.Rect) {
	if r == nil {
		p.boundsLimit = nil
		return
	}
	p.boundsLimit = geom.RectPtr(*r)
}

// SetBackdropFilter sets the filter applied to the backdrop of the pass.
// It must be set before the pass is added to its parent.
func (p *EntityPass) SetBackdropFilter(proc BackdropFilterProc) {
	if p.superpass != nil {
		compositor.Logger().Warn("pass: backdrop filter set after the pass was added to its parent")
		return
	}
	p.backdropFilter = proc
}

// HasBackdropFilter reports whether a backdrop filter is set.
func (p *EntityPass) HasBackdropFilter() bool { return p.backdropFilter != nil }

// SetEnableOffscreenCheckerboard tints every offscreen target of the pass
// tree with a checkerboard.
func (p *EntityPass) SetEnableOffscreenCheckerboard(enabled bool) {
	p.checkerboard = enabled
}

// RequiredMipCount returns the mip count of the offscreen target of p.
func (p *EntityPass) RequiredMipCount() int { return p.requiredMipCount }

// SetRequiredMipCount sets the mip count of the offscreen target of p.
func (p *EntityPass) SetRequiredMipCount(n int) {
	p.requiredMipCount = max(1, n)
}

// TotalPassReads returns how many times rendering p reads back its own
// target: once per child with a backdrop filter, plus once per advanced
// blend when the device has no framebuffer fetch.
func (p *EntityPass) TotalPassReads(r *entity.ContentContext) int {
	if r.Capabilities().SupportsFramebufferFetch {
		return p.backdropReads
	}
	return p.backdropReads + p.advancedBlendReads
}

// IterateAllElements calls fn for every element of the tree depth first, a
// subpass before its children, until fn returns false.
func (p *EntityPass) IterateAllElements(fn func(Element) bool) {
	p.iterateElements(fn)
}

func (p *EntityPass) iterateElements(fn func(Element) bool) bool {
	for _, el := range p.elements {
		if !fn(el) {
			return false
		}
		if s := el.Subpass(); s != nil && !s.iterateElements(fn) {
			return false
		}
	}
	return true
}

// IterateAllEntities calls fn for every entity of the tree in element
// order until fn returns false.
func (p *EntityPass) IterateAllEntities(fn func(*entity.Entity) bool) {
	p.IterateAllElements(func(el Element) bool {
		if e := el.Entity(); e != nil {
			return fn(e)
		}
		return true
	})
}

// IterateUntilSubpass calls fn for the leading entities of p until fn
// returns false or a subpass is reached. It reports whether it stopped at
// a subpass.
func (p *EntityPass) IterateUntilSubpass(fn func(*entity.Entity) bool) bool {
	for _, el := range p.elements {
		e := el.Entity()
		if e == nil {
			return true
		}
		if !fn(e) {
			return false
		}
	}
	return false
}

// ClearColor folds the leading elements that paint the whole target of
// the given size into a premultiplied clear color. It returns false when
// no element qualifies or a backdrop filter needs the uncleared backdrop.
func (p *EntityPass) ClearColor(size geom.ISize) (geom.Color, bool) {
	return p.clearColor(size, geom.Point{})
}

// clearColor is ClearColor for a target whose top left corner sits at
// origin in the root pass.
func (p *EntityPass) clearColor(size geom.ISize, origin geom.Point) (geom.Color, bool) {
	if p.backdropFilter != nil {
		return geom.Color{}, false
	}
	var (
		acc   geom.Color
		found bool
	)
	for _, el := range p.elements {
		e := el.Entity()
		if e == nil {
			break
		}
		c, ok := backgroundColor(e, size, origin)
		if !ok {
			break
		}
		acc = blend.Colors(acc, c, e.BlendMode)
		found = true
	}
	if !found {
		return geom.Color{}, false
	}
	return acc.Premultiply(), true
}

// backgroundColor is AsBackgroundColor for e drawn into a target whose top
// left corner sits at origin in the root pass.
func backgroundColor(e *entity.Entity, size geom.ISize, origin geom.Point) (geom.Color, bool) {
	if origin != (geom.Point{}) {
		e = e.Clone()
		e.Transform = geom.TranslatePoint(origin.Neg()).Multiply(e.Transform)
	}
	return e.AsBackgroundColor(size)
}

// ClearColorOrDefault returns ClearColor, or transparent black.
func (p *EntityPass) ClearColorOrDefault(size geom.ISize) geom.Color {
	c, _ := p.ClearColor(size)
	return c
}

// ElementsCoverage returns the union of the coverage of all elements,
// clamped to limit when it is not nil. It returns false when the elements
// cover nothing.
func (p *EntityPass) ElementsCoverage(limit *geom.Rect) (geom.Rect, bool) {
	var acc *geom.Rect
	for _, el := range p.elements {
		var (
			cov geom.Rect
			ok  bool
		)
		if e := el.Entity(); e != nil {
			cov, ok = e.Coverage()
			if ok && limit != nil {
				if f, isFilter := e.Contents.(*contents.FilterContents); !isFilter || f.IsTranslationOnly() {
					cov, ok = cov.Intersection(*limit)
				}
			}
		} else {
			cov, ok = p.subpassElementCoverage(el.Subpass(), acc, limit)
		}
		if ok {
			acc = geom.UnionOptional(acc, cov)
		}
	}
	if acc == nil {
		return geom.Rect{}, false
	}
	return *acc, true
}

func (p *EntityPass) subpassElementCoverage(sub *EntityPass, acc, limit *geom.Rect) (geom.Rect, bool) {
	unfiltered := geom.OptionalRect(p.SubpassCoverage(sub, nil))
	if acc != nil && sub.backdropFilter != nil {
		f := sub.backdropFilter(&contents.PlaceholderInput{Rect: *acc}, sub.transform, contents.RenderingSubpass)
		if f == nil {
			compositor.Logger().Error("pass: backdrop filter proc returned no filter")
		} else if bc, ok := f.Coverage(entity.New(nil)); ok {
			unfiltered = geom.UnionOptional(unfiltered, bc)
		}
	}
	if unfiltered == nil {
		return geom.Rect{}, false
	}

	cov, ok := *unfiltered, true
	if f := sub.delegate.WithImageFilter(&contents.PlaceholderInput{Rect: *unfiltered}, sub.transform); f != nil {
		e := entity.New(nil)
		e.Transform = sub.transform
		cov, ok = f.Coverage(e)
	}
	if !ok {
		return geom.Rect{}, false
	}
	return geom.IntersectOptional(cov, limit)
}

// SubpassCoverage returns the area sub paints in the space of p, clamped
// to limit and to the bounds limit of sub. Image filters of sub map the
// limit back to the space of its elements first.
func (p *EntityPass) SubpassCoverage(sub *EntityPass, limit *geom.Rect) (geom.Rect, bool) {
	if limit != nil {
		if f := sub.delegate.WithImageFilter(&contents.PlaceholderInput{}, sub.transform); f != nil {
			limit = geom.OptionalRect(f.SourceCoverage(sub.transform, *limit))
		}
	}
	cov, ok := sub.ElementsCoverage(limit)
	if !ok {
		return geom.Rect{}, false
	}
	if sub.boundsLimit == nil {
		return cov, true
	}
	return cov.Intersection(sub.boundsLimit.TransformBounds(sub.transform))
}

// populateGlyphAtlas adds the text of every entity of the tree to the glyph
// atlas of r.
func (p *EntityPass) populateGlyphAtlas(r *entity.ContentContext) {
	atlas := r.GlyphAtlas()
	p.IterateAllEntities(func(e *entity.Entity) bool {
		if g, ok := e.Contents.(entity.GlyphAtlasPopulator); ok {
			g.PopulateGlyphAtlas(atlas, e.DeriveTextScale())
		}
		return true
	})
}

// checkerboardColor is the tint of the offscreen checkerboard at depth.
func checkerboardColor(depth int) geom.Color {
	return geom.ColorHSB(0, 1, max(0, 0.6-float64(depth)/5), 0.25)
}

// backdropTexture wraps the texture of a flipped backdrop so it is drawn
// over the whole target regardless of the clip.
func backdropTexture(tex gpu.Texture) *contents.Texture {
	c := contents.NewTexture(tex, geom.MakeSize(tex.Size()))
	c.SetStencilEnabled(false)
	return c
}
