package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// FramebufferBlend draws a child with an advanced blend mode by reading
// the destination pixels in the shader. It needs framebuffer fetch.
type FramebufferBlend struct {
	entity.Base
	child entity.Contents
	mode  geom.BlendMode
}

// NewFramebufferBlend returns child blended with mode.
func NewFramebufferBlend(child entity.Contents, mode geom.BlendMode) *FramebufferBlend {
	return &FramebufferBlend{child: child, mode: mode}
}

// Coverage implements entity.Contents.
func (c *FramebufferBlend) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if c.child == nil {
		return geom.Rect{}, false
	}
	return c.child.Coverage(e)
}

// Render implements entity.Contents.
func (c *FramebufferBlend) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	if c.child == nil {
		return nil
	}
	if !r.Capabilities().SupportsFramebufferFetch {
		return gpu.ErrUnsupported
	}
	snap, err := RenderToSnapshot(c.child, r, e, SnapshotOptions{
		CoverageLimit: c.CoverageHint(),
		Label:         "FramebufferBlend",
	})
	if err != nil || snap == nil {
		return err
	}

	opts := entity.OptionsFromPassAndEntity(pass, e)
	opts.BlendMode = geom.BlendModeSource
	opts.Primitive = gpu.PrimitiveTriangleStrip
	return entity.Command{
		Label:            "Framebuffer Advanced Blend Filter",
		Pipeline:         r.Pipeline(gpu.PipelineFramebufferBlend, opts),
		StencilReference: e.ClipDepth,
		Vertices:         gpu.TexturedQuadStrip(geom.MakeSize(snap.Texture.Size()), geom.MakeXYWH(0, 0, 1, 1)),
		Bindings: gpu.Bindings{
			Frame: e.FrameInfo(pass, snap.Transform),
			Fragment: gpu.FragmentInfo{
				Texture:   snap.Texture,
				Sampler:   snap.Sampler,
				Alpha:     snap.Opacity,
				BlendMode: c.mode,
			},
		},
	}.Encode(pass)
}
