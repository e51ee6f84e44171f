package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// ClipOp is how a clip combines with the current clip.
type ClipOp uint8

const (
	ClipIntersect ClipOp = iota
	ClipDifference
)

// String returns the operation name.
func (op ClipOp) String() string {
	if op == ClipDifference {
		return "Difference"
	}
	return "Intersect"
}

// Clip restricts later draws to (or away from) a geometry by raising the
// stencil inside it.
type Clip struct {
	entity.Base
	geometry geometry.Geometry
	op       ClipOp
}

// NewClip returns a clip of g.
func NewClip(g geometry.Geometry, op ClipOp) *Clip {
	return &Clip{geometry: g, op: op}
}

// Geometry returns the clip shape.
func (c *Clip) Geometry() geometry.Geometry { return c.geometry }

// Op returns the clip operation.
func (c *Clip) Op() ClipOp { return c.op }

// Coverage reports false: clips paint nothing.
func (c *Clip) Coverage(*entity.Entity) (geom.Rect, bool) { return geom.Rect{}, false }

// ShouldRender reports true: clips always update the stencil.
func (c *Clip) ShouldRender(*entity.Entity, *geom.Rect) bool { return true }

// CanInheritOpacity implements entity.OpacityInheritor.
func (c *Clip) CanInheritOpacity(*entity.Entity) bool { return true }

// SetInheritedOpacity implements entity.OpacityInheritor.
func (c *Clip) SetInheritedOpacity(float64) {}

// ClipCoverage implements entity.ClipCoverager.
func (c *Clip) ClipCoverage(e *entity.Entity, current *geom.Rect) entity.ClipCoverage {
	if current == nil {
		return entity.ClipCoverage{Type: entity.ClipAppend}
	}
	if c.op == ClipDifference {
		return entity.ClipCoverage{Type: entity.ClipAppend, Coverage: current}
	}
	if c.geometry == nil {
		return entity.ClipCoverage{Type: entity.ClipAppend}
	}
	cov, ok := c.geometry.Coverage(e.Transform)
	if !ok {
		return entity.ClipCoverage{Type: entity.ClipAppend}
	}
	return entity.ClipCoverage{Type: entity.ClipAppend, Coverage: geom.OptionalRect(current.Intersection(cov))}
}

// Render implements entity.Contents.
func (c *Clip) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	opts := entity.OptionsFromPass(pass)
	opts.BlendMode = geom.BlendModeDestination
	depth := gpu.FrameInfo{Depth: e.ShaderClipDepth()}
	ref := e.ClipDepth

	label := "Intersect Clip"
	opts.StencilMode = gpu.StencilClipIncrement
	if c.op == ClipDifference {
		opts.Primitive = gpu.PrimitiveTriangleStrip
		full := entity.Command{
			Label:            "Difference Clip (Increment)",
			Pipeline:         r.Pipeline(gpu.PipelineClip, opts),
			StencilReference: ref,
			Vertices:         gpu.QuadStrip(geom.MakeSize(pass.RenderTargetSize())),
			Bindings: gpu.Bindings{Frame: gpu.FrameInfo{
				MVP:   gpu.OrthographicTransform(pass.RenderTargetSize()),
				Depth: depth.Depth,
			}},
		}
		if err := full.Encode(pass); err != nil {
			return err
		}
		label = "Difference Clip (Punch)"
		opts.StencilMode = gpu.StencilClipDecrement
		ref++
	}

	if c.geometry == nil {
		return nil
	}
	res := c.geometry.PositionBuffer(r, e, pass)
	if res.Vertices.VertexCount() == 0 {
		return nil
	}
	opts.Primitive = res.Vertices.Primitive
	depth.MVP = res.Transform
	return entity.Command{
		Label:            label,
		Pipeline:         r.Pipeline(gpu.PipelineClip, opts),
		StencilReference: ref,
		Vertices:         res.Vertices,
		Bindings:         gpu.Bindings{Frame: depth},
	}.Encode(pass)
}

// ClipRestore lowers the stencil back to the entity's clip depth, undoing
// the clips pushed since.
type ClipRestore struct {
	entity.Base
	restoreCoverage *geom.Rect
}

// NewClipRestore returns a restore over the whole target.
func NewClipRestore() *ClipRestore { return &ClipRestore{} }

// SetRestoreCoverage limits the restore to coverage. Nil restores the whole
// target.
func (c *ClipRestore) SetRestoreCoverage(coverage *geom.Rect) {
	if coverage == nil {
		c.restoreCoverage = nil
		return
	}
	r := *coverage
	c.restoreCoverage = &r
}

// RestoreCoverage returns the restored area, or nil for the whole target.
func (c *ClipRestore) RestoreCoverage() *geom.Rect { return c.restoreCoverage }

// Coverage reports false: restores paint nothing.
func (c *ClipRestore) Coverage(*entity.Entity) (geom.Rect, bool) { return geom.Rect{}, false }

// ShouldRender reports true.
func (c *ClipRestore) ShouldRender(*entity.Entity, *geom.Rect) bool { return true }

// ClipCoverage implements entity.ClipCoverager.
func (c *ClipRestore) ClipCoverage(*entity.Entity, *geom.Rect) entity.ClipCoverage {
	return entity.ClipCoverage{Type: entity.ClipRestore}
}

// CanInheritOpacity implements entity.OpacityInheritor.
func (c *ClipRestore) CanInheritOpacity(*entity.Entity) bool { return true }

// SetInheritedOpacity implements entity.OpacityInheritor.
func (c *ClipRestore) SetInheritedOpacity(float64) {}

// Render implements entity.Contents.
func (c *ClipRestore) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	opts := entity.OptionsFromPass(pass)
	opts.BlendMode = geom.BlendModeDestination
	opts.StencilMode = gpu.StencilClipRestore
	opts.Primitive = gpu.PrimitiveTriangleStrip

	area := geom.MakeSize(pass.RenderTargetSize())
	if c.restoreCoverage != nil {
		area = *c.restoreCoverage
	}
	return entity.Command{
		Label:            "Restore Clip",
		Pipeline:         r.Pipeline(gpu.PipelineClip, opts),
		StencilReference: e.ClipDepth,
		Vertices:         gpu.QuadStrip(area),
		Bindings: gpu.Bindings{Frame: gpu.FrameInfo{
			MVP:   gpu.OrthographicTransform(pass.RenderTargetSize()),
			Depth: e.ShaderClipDepth(),
		}},
	}.Encode(pass)
}
