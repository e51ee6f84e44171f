package entity

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// MaxClipDepth is the number of distinct depths ShaderClipDepth resolves.
const MaxClipDepth = 1 << 18

// Entity is one positioned, blended, clip-scoped drawable.
type Entity struct {
	Transform    geom.Matrix
	Contents     Contents
	BlendMode    geom.BlendMode
	ClipDepth    uint32
	NewClipDepth uint32
}

// New returns an entity drawing c with the identity transform and
// SourceOver blending.
func New(c Contents) *Entity {
	return &Entity{
		Transform: geom.Identity(),
		Contents:  c,
		BlendMode: geom.BlendModeSourceOver,
	}
}

// Clone returns a copy of e sharing its contents.
func (e *Entity) Clone() *Entity {
	c := *e
	return &c
}

// Coverage returns the area e affects, or false when it affects nothing.
func (e *Entity) Coverage() (geom.Rect, bool) {
	if e.Contents == nil {
		return geom.Rect{}, false
	}
	r, ok := e.Contents.Coverage(e)
	if !ok || r.IsEmpty() {
		return geom.Rect{}, false
	}
	return r, true
}

// ClipCoverage returns the clip left behind by e given the current clip.
func (e *Entity) ClipCoverage(current *geom.Rect) ClipCoverage {
	if c, ok := e.Contents.(ClipCoverager); ok {
		return c.ClipCoverage(e, current)
	}
	return ClipCoverage{Type: ClipNoChange, Coverage: current}
}

// ShouldRender reports whether e can be visible under clip.
func (e *Entity) ShouldRender(clip *geom.Rect) bool {
	if p, ok := e.Contents.(RenderPredicate); ok {
		return p.ShouldRender(e, clip)
	}
	if clip == nil {
		return false
	}
	cov, ok := e.Coverage()
	if !ok {
		return false
	}
	if cov.IsMaximum() {
		return true
	}
	return cov.IntersectsWithRect(*clip)
}

// AsBackgroundColor returns the color e paints over a whole target of the
// given size, or false when e cannot be folded into a clear color.
func (e *Entity) AsBackgroundColor(target geom.ISize) (geom.Color, bool) {
	if b, ok := e.Contents.(BackgroundColorer); ok {
		return b.AsBackgroundColor(e, target)
	}
	return geom.Color{}, false
}

// CanInheritOpacity reports whether a group opacity can be applied to e by
// scaling its contents' alpha.
func (e *Entity) CanInheritOpacity() bool {
	if e.Contents == nil {
		return false
	}
	switch {
	case e.BlendMode == geom.BlendModeSource && e.Contents.IsOpaque():
	case e.BlendMode == geom.BlendModeSourceOver:
	default:
		return false
	}
	o, ok := e.Contents.(OpacityInheritor)
	return ok && o.CanInheritOpacity(e)
}

// SetInheritedOpacity applies a group opacity to e. Opaque Source draws
// become SourceOver since they are no longer opaque.
func (e *Entity) SetInheritedOpacity(alpha float64) bool {
	if !e.CanInheritOpacity() {
		return false
	}
	if e.BlendMode == geom.BlendModeSource && e.Contents.IsOpaque() {
		e.BlendMode = geom.BlendModeSourceOver
	}
	e.Contents.(OpacityInheritor).SetInheritedOpacity(alpha)
	return true
}

// ShaderClipDepth maps NewClipDepth into [0, 1].
func (e *Entity) ShaderClipDepth() float64 {
	return min(1, max(0, float64(e.NewClipDepth)/MaxClipDepth))
}

// DeriveTextScale returns the scale glyphs of e are rasterized at.
func (e *Entity) DeriveTextScale() float64 {
	return e.Transform.MaxBasisLengthXY()
}

// Render draws e into pass. Contents without a coverage hint are hinted with
// the whole target.
func (e *Entity) Render(r *ContentContext, pass gpu.RenderPass) error {
	if e.Contents == nil {
		return nil
	}
	if h, ok := e.Contents.(CoverageHinter); ok && h.CoverageHint() == nil {
		h.SetCoverageHint(geom.RectPtr(geom.MakeSize(pass.RenderTargetSize())))
	}
	return e.Contents.Render(r, e, pass)
}

// FrameInfo returns the vertex uniforms for drawing e into pass with the
// geometry transform m.
func (e *Entity) FrameInfo(pass gpu.RenderPass, m geom.Matrix) gpu.FrameInfo {
	return gpu.FrameInfo{
		MVP:   gpu.OrthographicTransform(pass.RenderTargetSize()).Multiply(m),
		Depth: e.ShaderClipDepth(),
	}
}
