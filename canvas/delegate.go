package canvas

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/pass"
)

// peepholeMaxElements is the most elements a collapsible layer holds: a
// clip, one draw and the restore of the clip.
const peepholeMaxElements = 3

// PaintPassDelegate composites a layer offscreen with the opacity and
// filters of its paint. Layers drawn with the Destination blend mode are
// elided.
type PaintPassDelegate struct {
	paint Paint
}

// NewPaintPassDelegate returns a delegate for a layer drawn with p.
func NewPaintPassDelegate(p *Paint) *PaintPassDelegate {
	return &PaintPassDelegate{paint: *defaultPaint(p)}
}

// CanElide implements pass.Delegate.
func (d *PaintPassDelegate) CanElide() bool {
	return d.paint.BlendMode == geom.BlendModeDestination
}

// CanCollapseIntoParentPass implements pass.Delegate.
func (d *PaintPassDelegate) CanCollapseIntoParentPass(*pass.EntityPass) bool { return false }

// CreateContentsForSubpassTarget implements pass.Delegate.
func (d *PaintPassDelegate) CreateContentsForSubpassTarget(tex gpu.Texture, effect geom.Matrix) entity.Contents {
	return subpassContents(&d.paint, tex, effect)
}

// WithImageFilter implements pass.Delegate.
func (d *PaintPassDelegate) WithImageFilter(in contents.FilterInput, effect geom.Matrix) *contents.FilterContents {
	return d.paint.imageFilterFor(in, effect)
}

func subpassContents(p *Paint, tex gpu.Texture, effect geom.Matrix) entity.Contents {
	c := contents.NewTexture(tex, geom.MakeSize(tex.Size()))
	c.SetOpacity(p.Color.A)
	c.SetDeferApplyingOpacity(true)
	return p.withFiltersForSubpassTarget(c, effect)
}

// OpacityPeepholePassDelegate is used for SourceOver layers. A layer with a
// translucent paint and no filters holding a few non-overlapping draws
// collapses into its parent, each draw taking the layer opacity.
type OpacityPeepholePassDelegate struct {
	PaintPassDelegate
}

// NewOpacityPeepholePassDelegate returns a delegate for a layer drawn with
// p.
func NewOpacityPeepholePassDelegate(p *Paint) *OpacityPeepholePassDelegate {
	return &OpacityPeepholePassDelegate{PaintPassDelegate: PaintPassDelegate{paint: *defaultPaint(p)}}
}

// CanCollapseIntoParentPass implements pass.Delegate. On success the
// entities of p inherit the layer opacity.
func (d *OpacityPeepholePassDelegate) CanCollapseIntoParentPass(p *pass.EntityPass) bool {
	alpha := d.paint.Color.A
	if alpha <= 0 || alpha >= 1 || d.paint.ImageFilter != nil || d.paint.HasColorFilter() {
		return false
	}
	if p.BoundsLimit() != nil || p.ElementCount() > peepholeMaxElements {
		return false
	}
	accepted := true
	var seen []geom.Rect
	hadSubpass := p.IterateUntilSubpass(func(e *entity.Entity) bool {
		if !e.CanInheritOpacity() {
			accepted = false
			return false
		}
		if cov, ok := e.Coverage(); ok {
			if overlapsAny(seen, cov) {
				accepted = false
				return false
			}
			seen = append(seen, cov)
		}
		return true
	})
	if hadSubpass || !accepted {
		return false
	}
	p.IterateUntilSubpass(func(e *entity.Entity) bool {
		e.SetInheritedOpacity(alpha)
		return true
	})
	return true
}

// ColorFilterPeepholePassDelegate is used for SourceOver layers with only a
// color filter. A layer of a few non-overlapping draws that all accept the
// filter on the CPU collapses into its parent with the filter folded into
// each draw.
type ColorFilterPeepholePassDelegate struct {
	PaintPassDelegate
	applied bool
}

// NewColorFilterPeepholePassDelegate returns a delegate for a layer drawn
// with p.
func NewColorFilterPeepholePassDelegate(p *Paint) *ColorFilterPeepholePassDelegate {
	return &ColorFilterPeepholePassDelegate{PaintPassDelegate: PaintPassDelegate{paint: *defaultPaint(p)}}
}

// CanCollapseIntoParentPass implements pass.Delegate. On the first success
// the color filter is applied to the entities of p.
func (d *ColorFilterPeepholePassDelegate) CanCollapseIntoParentPass(p *pass.EntityPass) bool {
	if d.applied {
		return true
	}
	cf := d.paint.ColorFilter
	if cf == nil || cf.AffectsTransparentBlack() || d.paint.ImageFilter != nil || !d.paint.Color.IsOpaque() {
		return false
	}
	if p.BoundsLimit() != nil || p.ElementCount() > peepholeMaxElements {
		return false
	}
	accepted := true
	var seen []geom.Rect
	hadSubpass := p.IterateUntilSubpass(func(e *entity.Entity) bool {
		if _, clip := e.Contents.(entity.ClipCoverager); clip {
			return true
		}
		prober, ok := e.Contents.(entity.ColorFilterProber)
		if !ok || !prober.CanApplyColorFilter() {
			accepted = false
			return false
		}
		if cov, ok := e.Coverage(); ok {
			if overlapsAny(seen, cov) {
				accepted = false
				return false
			}
			seen = append(seen, cov)
		}
		return true
	})
	if hadSubpass || !accepted {
		return false
	}
	proc := cf.Proc()
	p.IterateUntilSubpass(func(e *entity.Entity) bool {
		if _, clip := e.Contents.(entity.ClipCoverager); !clip {
			e.Contents.ApplyColorFilter(proc)
		}
		return true
	})
	d.applied = true
	return true
}

func overlapsAny(rects []geom.Rect, r geom.Rect) bool {
	for _, o := range rects {
		if o.IntersectsWithRect(r) {
			return true
		}
	}
	return false
}
