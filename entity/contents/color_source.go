package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// ColorSource holds what every geometry-shading contents has: the shape,
// an opacity factor and the effect transform of the pattern.
type ColorSource struct {
	entity.Base

	geometry         geometry.Geometry
	opacity          float64
	inheritedOpacity float64
	effectTransform  geom.Matrix
}

func newColorSource(g geometry.Geometry) ColorSource {
	return ColorSource{
		geometry:         g,
		opacity:          1,
		inheritedOpacity: 1,
		effectTransform:  geom.Identity(),
	}
}

// Geometry returns the shaded shape.
func (c *ColorSource) Geometry() geometry.Geometry { return c.geometry }

// SetGeometry sets the shaded shape.
func (c *ColorSource) SetGeometry(g geometry.Geometry) { c.geometry = g }

// SetOpacity sets the paint opacity.
func (c *ColorSource) SetOpacity(opacity float64) { c.opacity = opacity }

// OpacityFactor returns the paint opacity times the inherited group opacity.
func (c *ColorSource) OpacityFactor() float64 { return c.opacity * c.inheritedOpacity }

// SetEffectTransform sets the transform from pattern space to local space.
func (c *ColorSource) SetEffectTransform(m geom.Matrix) { c.effectTransform = m }

// InverseEffectTransform maps local space to pattern space.
func (c *ColorSource) InverseEffectTransform() geom.Matrix {
	if c.effectTransform.Determinant() == 0 {
		return geom.Identity()
	}
	return c.effectTransform.Invert()
}

// Coverage returns the bounds of the geometry under the entity transform.
func (c *ColorSource) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if c.geometry == nil {
		return geom.Rect{}, false
	}
	return c.geometry.Coverage(e.Transform)
}

// CanInheritOpacity reports true: color sources scale their alpha.
func (c *ColorSource) CanInheritOpacity(*entity.Entity) bool { return true }

// SetInheritedOpacity sets the group opacity.
func (c *ColorSource) SetInheritedOpacity(opacity float64) { c.inheritedOpacity = opacity }

// drawGeometry tessellates g and draws it with the pipeline kind. Geometry
// that asks to prevent overdraw marks the stencil while drawing and restores
// it over the covered area afterwards.
func drawGeometry(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass, g geometry.Geometry,
	label string, kind gpu.PipelineKind, frag gpu.FragmentInfo) error {
	if g == nil {
		return nil
	}
	res := g.PositionBuffer(r, e, pass)
	if res.Vertices.VertexCount() == 0 {
		return nil
	}

	opts := entity.OptionsFromPassAndEntity(pass, e)
	stencilOverdraw := res.PreventOverdraw && opts.HasStencilAttachment
	if stencilOverdraw {
		opts.StencilMode = gpu.StencilClipIncrement
	}
	opts.Primitive = res.Vertices.Primitive

	cmd := entity.Command{
		Label:            label,
		Pipeline:         r.Pipeline(kind, opts),
		StencilReference: e.ClipDepth,
		Vertices:         res.Vertices,
		Bindings: gpu.Bindings{
			Frame:    gpu.FrameInfo{MVP: res.Transform, Depth: e.ShaderClipDepth()},
			Fragment: frag,
		},
	}
	if err := cmd.Encode(pass); err != nil {
		return err
	}

	if stencilOverdraw {
		restore := &ClipRestore{}
		if cov, ok := g.Coverage(e.Transform); ok {
			restore.SetRestoreCoverage(&cov)
		}
		return restore.Render(r, e, pass)
	}
	return nil
}
