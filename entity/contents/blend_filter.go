package contents

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// blendFilter composites its inputs in order with one blend mode, then the
// optional foreground color on top.
type blendFilter struct {
	passThroughOp
	mode       geom.BlendMode
	foreground *geom.Color
}

// NewBlend returns the inputs blended with mode. The first input is the
// destination. A non-nil foreground is blended over the result, which lets
// a single input act as a blend color filter.
func NewBlend(inputs []FilterInput, mode geom.BlendMode, foreground *geom.Color) *FilterContents {
	op := &blendFilter{mode: mode}
	if foreground != nil {
		c := *foreground
		op.foreground = &c
	}
	return newFilter(op, inputs...)
}

func (b *blendFilter) label() string { return "Blend" }

func (b *blendFilter) render(f *FilterContents, r *entity.ContentContext, e *entity.Entity, coverage geom.Rect, _ *geom.Rect) (*entity.Entity, error) {
	if len(f.inputs) == 0 {
		return nil, nil
	}
	limit := geom.RectPtr(coverage)
	snaps := make([]*Snapshot, 0, len(f.inputs))
	for _, in := range f.inputs {
		s, err := in.Snapshot(r, e, SnapshotOptions{CoverageLimit: limit, Label: "Blend"})
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	if snaps[0] == nil && len(snaps) == 1 {
		return nil, nil
	}

	size := geom.ISize{Width: int(math.Ceil(coverage.Width())), Height: int(math.Ceil(coverage.Height()))}
	if size.IsEmpty() {
		return nil, nil
	}
	origin := geom.Translate(coverage.MinX, coverage.MinY)

	var encode entity.SubpassCallback
	if b.mode.IsAdvanced() {
		encode = b.advanced(snaps, origin, size)
	} else {
		encode = b.pipeline(snaps, origin, size)
	}
	target, err := r.MakeSubpass("Blend Filter", size, encode, false, 1)
	if err != nil {
		return nil, err
	}
	return EntityFromSnapshot(&Snapshot{
		Texture:   target.RenderTargetTexture(),
		Transform: origin,
		Opacity:   1,
	}, e.BlendMode, e.ClipDepth), nil
}

// pipeline draws each snapshot with the fixed-function blend.
func (b *blendFilter) pipeline(snaps []*Snapshot, origin geom.Matrix, size geom.ISize) entity.SubpassCallback {
	toSubpass := origin.Invert()
	return func(r *entity.ContentContext, pass gpu.RenderPass) error {
		for i, s := range snaps {
			if s == nil {
				continue
			}
			mode := b.mode
			if i == 0 {
				mode = geom.BlendModeSource
			}
			ent := EntityFromSnapshot(s, mode, 0)
			ent.Transform = toSubpass.Multiply(s.Transform)
			if err := ent.Render(r, pass); err != nil {
				return err
			}
		}
		if b.foreground == nil {
			return nil
		}
		opts := entity.OptionsFromPass(pass)
		opts.BlendMode = b.mode
		opts.Primitive = gpu.PrimitiveTriangleStrip
		return entity.Command{
			Label:    "Blend Foreground",
			Pipeline: r.Pipeline(gpu.PipelineSolidFill, opts),
			Vertices: gpu.QuadStrip(geom.MakeSize(size)),
			Bindings: gpu.Bindings{
				Frame:    gpu.FrameInfo{MVP: gpu.OrthographicTransform(size)},
				Fragment: gpu.FragmentInfo{Color: b.foreground.Premultiply()},
			},
		}.Encode(pass)
	}
}

// advanced blends with a shader reading the destination and source
// snapshots, or the destination and the foreground color.
func (b *blendFilter) advanced(snaps []*Snapshot, origin geom.Matrix, size geom.ISize) entity.SubpassCallback {
	return func(r *entity.ContentContext, pass gpu.RenderPass) error {
		dst := snaps[0]
		if dst == nil {
			return nil
		}
		frag := gpu.FragmentInfo{
			Texture:          dst.Texture,
			TextureTransform: dst.UVTransform().Multiply(origin),
			Sampler:          gpu.SamplerDescriptor{Decal: true},
			BlendMode:        b.mode,
			Alpha:            1,
		}
		switch {
		case b.foreground != nil:
			frag.ForegroundColor = b.foreground.Premultiply()
			frag.HasForeground = true
		case len(snaps) > 1 && snaps[1] != nil:
			frag.Texture2 = snaps[1].Texture
			frag.Texture2Transform = snaps[1].UVTransform().Multiply(origin)
		default:
			frag.HasForeground = true
		}

		opts := entity.OptionsFromPass(pass)
		opts.BlendMode = geom.BlendModeSource
		opts.Primitive = gpu.PrimitiveTriangleStrip
		return entity.Command{
			Label:    "Advanced Blend Filter",
			Pipeline: r.Pipeline(gpu.PipelineAdvancedBlend, opts),
			Vertices: gpu.QuadStrip(geom.MakeSize(size)),
			Bindings: gpu.Bindings{
				Frame:    gpu.FrameInfo{MVP: gpu.OrthographicTransform(size)},
				Fragment: frag,
			},
		}.Encode(pass)
	}
}
