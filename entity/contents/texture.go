package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// closeEnough is the tolerance below which an opacity counts as 1.
const closeEnough = 1e-3

// Texture draws a rect of a texture into a destination rect.
type Texture struct {
	entity.Base

	texture          gpu.Texture
	sourceRect       geom.Rect
	destRect         geom.Rect
	sampler          gpu.SamplerDescriptor
	opacity          float64
	inheritedOpacity float64
	deferOpacity     bool
	stencilEnabled   bool
}

// NewTexture returns contents drawing all of tex into dest.
func NewTexture(tex gpu.Texture, dest geom.Rect) *Texture {
	t := &Texture{
		texture:          tex,
		destRect:         dest,
		opacity:          1,
		inheritedOpacity: 1,
		stencilEnabled:   true,
	}
	if tex != nil {
		t.sourceRect = geom.MakeSize(tex.Size())
	}
	return t
}

// SourceTexture returns the drawn texture.
func (t *Texture) SourceTexture() gpu.Texture { return t.texture }

// SetSourceRect selects the texture pixels to draw.
func (t *Texture) SetSourceRect(r geom.Rect) { t.sourceRect = r }

// SetSampler sets the sampler.
func (t *Texture) SetSampler(s gpu.SamplerDescriptor) { t.sampler = s }

// SetOpacity sets the opacity.
func (t *Texture) SetOpacity(opacity float64) { t.opacity = opacity }

// Opacity returns the opacity times the inherited opacity.
func (t *Texture) Opacity() float64 { return t.opacity * t.inheritedOpacity }

// SetDeferApplyingOpacity makes snapshots pass the opacity on instead of
// baking it into a new texture.
func (t *Texture) SetDeferApplyingOpacity(v bool) { t.deferOpacity = v }

// SetStencilEnabled controls whether the draw is stencil tested. Textures
// that restore a backdrop are drawn regardless of the clip.
func (t *Texture) SetStencilEnabled(v bool) { t.stencilEnabled = v }

// Coverage implements entity.Contents.
func (t *Texture) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if t.texture == nil || t.Opacity() == 0 || t.destRect.IsEmpty() {
		return geom.Rect{}, false
	}
	return t.destRect.TransformBounds(e.Transform), true
}

// CanInheritOpacity implements entity.OpacityInheritor.
func (t *Texture) CanInheritOpacity(*entity.Entity) bool { return true }

// SetInheritedOpacity implements entity.OpacityInheritor.
func (t *Texture) SetInheritedOpacity(opacity float64) { t.inheritedOpacity = opacity }

// RenderToSnapshot implements Snapshotter. A texture drawn whole needs no
// offscreen pass: the snapshot is the texture itself.
func (t *Texture) RenderToSnapshot(r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error) {
	if t.texture == nil {
		return nil, nil
	}
	opacity := t.Opacity()
	if t.sourceRect == geom.MakeSize(t.texture.Size()) && (opacity >= 1-closeEnough || t.deferOpacity) {
		size := t.texture.Size()
		scale := geom.Scale(t.destRect.Width()/float64(size.Width), t.destRect.Height()/float64(size.Height))
		s := &Snapshot{
			Texture: t.texture,
			Transform: e.Transform.
				Multiply(geom.Translate(t.destRect.MinX, t.destRect.MinY)).
				Multiply(scale),
			Sampler: t.sampler,
			Opacity: opacity,
		}
		if opts.Sampler != nil {
			s.Sampler = *opts.Sampler
		}
		return s, nil
	}
	return renderToSnapshot(t, r, e, opts)
}

// Render implements entity.Contents.
func (t *Texture) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	if t.texture == nil || t.destRect.IsEmpty() || t.Opacity() == 0 {
		return nil
	}
	size := t.texture.Size()
	uv := t.sourceRect.Scale(1/float64(size.Width), 1/float64(size.Height))

	opts := entity.OptionsFromPassAndEntity(pass, e)
	if !t.stencilEnabled {
		opts.StencilMode = gpu.StencilIgnore
	}
	opts.Primitive = gpu.PrimitiveTriangleStrip

	return entity.Command{
		Label:            "Texture Fill",
		Pipeline:         r.Pipeline(gpu.PipelineTexture, opts),
		StencilReference: e.ClipDepth,
		Vertices:         gpu.TexturedQuadStrip(t.destRect, uv),
		Bindings: gpu.Bindings{
			Frame: e.FrameInfo(pass, e.Transform),
			Fragment: gpu.FragmentInfo{
				Texture: t.texture,
				Sampler: t.sampler,
				Alpha:   t.Opacity(),
			},
		},
	}.Encode(pass)
}
