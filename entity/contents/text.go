package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/text"
)

// Text draws a shaped frame from the glyph atlas.
type Text struct {
	entity.Base

	frame            *text.Frame
	offset           geom.Point
	color            geom.Color
	inheritedOpacity float64
}

// NewText returns contents drawing f with its origin at offset.
func NewText(f *text.Frame, offset geom.Point, c geom.Color) *Text {
	return &Text{frame: f, offset: offset, color: c, inheritedOpacity: 1}
}

// Frame returns the drawn frame.
func (t *Text) Frame() *text.Frame { return t.frame }

// Color returns the text color with the inherited opacity applied.
func (t *Text) Color() geom.Color {
	return t.color.WithAlpha(t.color.A * t.inheritedOpacity)
}

// Coverage implements entity.Contents.
func (t *Text) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if t.frame == nil || t.Color().IsTransparent() {
		return geom.Rect{}, false
	}
	b, ok := t.frame.Bounds()
	if !ok {
		return geom.Rect{}, false
	}
	return b.Shift(t.offset).TransformBounds(e.Transform), true
}

// CanInheritOpacity reports whether no two glyphs overlap; overlapping
// glyphs drawn translucently would double their alpha.
func (t *Text) CanInheritOpacity(*entity.Entity) bool {
	return t.frame != nil && !t.frame.MaybeHasOverlapping()
}

// SetInheritedOpacity implements entity.OpacityInheritor.
func (t *Text) SetInheritedOpacity(opacity float64) { t.inheritedOpacity = opacity }

// ApplyColorFilter implements entity.Contents.
func (t *Text) ApplyColorFilter(proc entity.ColorFilterProc) bool {
	t.color = proc(t.color)
	return true
}

// CanApplyColorFilter reports true.
func (t *Text) CanApplyColorFilter() bool { return true }

// PopulateGlyphAtlas implements entity.GlyphAtlasPopulator.
func (t *Text) PopulateGlyphAtlas(atlas *text.LazyGlyphAtlas, scale float64) {
	atlas.AddTextFrame(t.frame, scale)
}

// Render implements entity.Contents.
func (t *Text) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	if t.frame == nil || t.Color().IsTransparent() {
		return nil
	}
	atlas, err := r.GlyphAtlas().Atlas(r.Context())
	if err != nil {
		return err
	}
	if atlas.Texture() == nil {
		return nil
	}

	scale := e.DeriveTextScale()
	if scale <= 0 {
		return nil
	}
	size := t.frame.Size() * scale
	face := t.frame.Face()

	var vb gpu.VertexBuffer
	for _, run := range t.frame.Runs() {
		for _, g := range run.Glyphs {
			slot, ok := atlas.Lookup(face, g.ID, size)
			if !ok {
				continue
			}
			q := slot.Bounds.Scale(1/scale, 1/scale).Shift(g.Position.Add(t.offset))
			p := [4]geom.Point{{X: q.MinX, Y: q.MinY}, {X: q.MaxX, Y: q.MinY}, {X: q.MinX, Y: q.MaxY}, {X: q.MaxX, Y: q.MaxY}}
			u := [4]geom.Point{{X: slot.UV.MinX, Y: slot.UV.MinY}, {X: slot.UV.MaxX, Y: slot.UV.MinY}, {X: slot.UV.MinX, Y: slot.UV.MaxY}, {X: slot.UV.MaxX, Y: slot.UV.MaxY}}
			for _, i := range [6]int{0, 1, 2, 1, 3, 2} {
				vb.Positions = append(vb.Positions, p[i])
				vb.UVs = append(vb.UVs, u[i])
			}
		}
	}
	if vb.VertexCount() == 0 {
		return nil
	}

	opts := entity.OptionsFromPassAndEntity(pass, e)
	opts.Primitive = gpu.PrimitiveTriangle
	return entity.Command{
		Label:            "TextFrame",
		Pipeline:         r.Pipeline(gpu.PipelineGlyphAtlas, opts),
		StencilReference: e.ClipDepth,
		Vertices:         vb,
		Bindings: gpu.Bindings{
			Frame: e.FrameInfo(pass, e.Transform),
			Fragment: gpu.FragmentInfo{
				Texture: atlas.Texture(),
				Sampler: gpu.SamplerDescriptor{Linear: true},
				Color:   t.Color().Premultiply(),
			},
		},
	}.Encode(pass)
}
