package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// RuntimeEffect shades a geometry with a host function.
type RuntimeEffect struct {
	ColorSource
	effect gpu.EffectFunc
}

// NewRuntimeEffect returns contents shading g with fn. fn receives points
// in pattern space.
func NewRuntimeEffect(g geometry.Geometry, fn gpu.EffectFunc) *RuntimeEffect {
	return &RuntimeEffect{ColorSource: newColorSource(g), effect: fn}
}

// Render implements entity.Contents.
func (c *RuntimeEffect) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	if c.effect == nil {
		return nil
	}
	inv := c.InverseEffectTransform()
	fn := c.effect
	if !inv.IsIdentity() {
		fn = func(p geom.Point) geom.Color { return c.effect(inv.TransformPoint(p)) }
	}
	return drawGeometry(r, e, pass, c.geometry, "RuntimeEffectContents", gpu.PipelineRuntimeEffect, gpu.FragmentInfo{
		Effect: fn,
		Alpha:  c.OpacityFactor(),
	})
}
