package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Checkerboard tints the whole target with a checker pattern. It marks
// offscreen passes when debugging.
type Checkerboard struct {
	entity.Base
	color      geom.Color
	squareSize float64
}

// NewCheckerboard returns a checkerboard alternating c with transparent
// squares of the given size.
func NewCheckerboard(c geom.Color, squareSize float64) *Checkerboard {
	return &Checkerboard{color: c, squareSize: squareSize}
}

// Coverage reports false.
func (c *Checkerboard) Coverage(*entity.Entity) (geom.Rect, bool) { return geom.Rect{}, false }

// Render implements entity.Contents.
func (c *Checkerboard) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	opts := entity.OptionsFromPass(pass)
	opts.BlendMode = geom.BlendModeSourceOver
	opts.StencilMode = gpu.StencilIgnore
	opts.Primitive = gpu.PrimitiveTriangleStrip

	size := pass.RenderTargetSize()
	return entity.Command{
		Label:    "Checkerboard",
		Pipeline: r.Pipeline(gpu.PipelineCheckerboard, opts),
		Vertices: gpu.QuadStrip(geom.MakeSize(size)),
		Bindings: gpu.Bindings{
			Frame: gpu.FrameInfo{MVP: gpu.OrthographicTransform(size)},
			Fragment: gpu.FragmentInfo{
				Color:      c.color.Premultiply(),
				SquareSize: c.squareSize,
			},
		},
	}.Encode(pass)
}
