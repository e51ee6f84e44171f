package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/filter"
)

// colorFilter maps the colors of its input one pixel at a time. The result
// draws straight into the destination pass, no offscreen target needed.
type colorFilter struct {
	passThroughOp
	name   string
	kind   gpu.PipelineKind
	matrix filter.ColorMatrix
	// absorb folds the opacity of the input snapshot into the draw.
	absorb bool
}

// NewColorMatrix returns input transformed by the 4x5 matrix m.
func NewColorMatrix(input FilterInput, m filter.ColorMatrix, absorbOpacity bool) *FilterContents {
	return newFilter(&colorFilter{name: "ColorMatrix", kind: gpu.PipelineColorMatrix, matrix: m, absorb: absorbOpacity}, input)
}

// NewLinearToSRGB returns input with the sRGB transfer function applied.
func NewLinearToSRGB(input FilterInput, absorbOpacity bool) *FilterContents {
	return newFilter(&colorFilter{name: "LinearToSRGB", kind: gpu.PipelineLinearToSRGB, absorb: absorbOpacity}, input)
}

// NewSRGBToLinear returns input with the sRGB transfer function undone.
func NewSRGBToLinear(input FilterInput, absorbOpacity bool) *FilterContents {
	return newFilter(&colorFilter{name: "SRGBToLinear", kind: gpu.PipelineSRGBToLinear, absorb: absorbOpacity}, input)
}

func (c *colorFilter) label() string { return c.name }

func (c *colorFilter) render(f *FilterContents, r *entity.ContentContext, e *entity.Entity, _ geom.Rect, hint *geom.Rect) (*entity.Entity, error) {
	if len(f.inputs) == 0 {
		return nil, nil
	}
	snap, err := f.inputs[0].Snapshot(r, e, SnapshotOptions{CoverageLimit: hint, Label: c.name})
	if err != nil || snap == nil {
		return nil, err
	}
	alpha := 1.0
	if c.absorb {
		alpha = snap.Opacity
	}

	draw := &procContents{
		render: func(r *entity.ContentContext, sub *entity.Entity, pass gpu.RenderPass) error {
			opts := entity.OptionsFromPassAndEntity(pass, sub)
			opts.Primitive = gpu.PrimitiveTriangleStrip
			return entity.Command{
				Label:            c.name + " Filter",
				Pipeline:         r.Pipeline(c.kind, opts),
				StencilReference: sub.ClipDepth,
				Vertices:         gpu.TexturedQuadStrip(geom.MakeSize(snap.Texture.Size()), geom.MakeXYWH(0, 0, 1, 1)),
				Bindings: gpu.Bindings{
					Frame: sub.FrameInfo(pass, sub.Transform.Multiply(snap.Transform)),
					Fragment: gpu.FragmentInfo{
						Texture:     snap.Texture,
						Sampler:     snap.Sampler,
						ColorMatrix: c.matrix,
						Alpha:       alpha,
					},
				},
			}.Encode(pass)
		},
		coverage: func(sub *entity.Entity) (geom.Rect, bool) {
			cov, ok := snap.Coverage()
			if !ok {
				return geom.Rect{}, false
			}
			return cov.TransformBounds(sub.Transform), true
		},
	}

	out := entity.New(draw)
	out.BlendMode = e.BlendMode
	out.ClipDepth = e.ClipDepth
	return out, nil
}
