package contents

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/filter"
)

// gaussianBlur blurs its first input with separable Y then X passes.
type gaussianBlur struct {
	passThroughOp
	sigmaX, sigmaY float64
	tileMode       gpu.TileMode
}

// NewGaussianBlur returns a blur of input with the given sigmas in effect
// space.
func NewGaussianBlur(input FilterInput, sigmaX, sigmaY float64, mode gpu.TileMode) *FilterContents {
	return newFilter(&gaussianBlur{sigmaX: sigmaX, sigmaY: sigmaY, tileMode: mode}, input)
}

func (b *gaussianBlur) label() string { return "GaussianBlur" }

func absPoint(p geom.Point) geom.Point { return geom.Pt(math.Abs(p.X), math.Abs(p.Y)) }

// sigmas returns the blur sigmas and radii in the space of the input.
func (b *gaussianBlur) sigmas(effect geom.Matrix) (sigma, radius geom.Point) {
	sigma = absPoint(effect.TransformVector(geom.Pt(filter.ScaleSigma(b.sigmaX), filter.ScaleSigma(b.sigmaY))))
	radius = geom.Pt(filter.SigmaToRadius(sigma.X), filter.SigmaToRadius(sigma.Y))
	return sigma, radius
}

func padding(radius geom.Point) geom.Point {
	return geom.Pt(math.Ceil(radius.X), math.Ceil(radius.Y))
}

func (b *gaussianBlur) filterCoverage(f *FilterContents, e *entity.Entity) (geom.Rect, bool) {
	if len(f.inputs) == 0 {
		return geom.Rect{}, false
	}
	cov, ok := f.inputs[0].Coverage(e)
	if !ok {
		return geom.Rect{}, false
	}
	_, radius := b.sigmas(f.effectTransform)
	local := absPoint(e.Transform.TransformVector(padding(radius)))
	return cov.Expand(local.X, local.Y), true
}

func (b *gaussianBlur) filterSourceCoverage(_ *FilterContents, effect geom.Matrix, outputLimit geom.Rect) (geom.Rect, bool) {
	scaled := geom.Pt(filter.ScaleSigma(b.sigmaX), filter.ScaleSigma(b.sigmaY))
	radius := geom.Pt(filter.SigmaToRadius(scaled.X), filter.SigmaToRadius(scaled.Y))
	r := absPoint(effect.TransformVector(radius))
	return outputLimit.Expand(r.X, r.Y), true
}

func (b *gaussianBlur) sampler() gpu.SamplerDescriptor {
	return gpu.SamplerDescriptor{Linear: true, Decal: b.tileMode == gpu.TileDecal}
}

func (b *gaussianBlur) render(f *FilterContents, r *entity.ContentContext, e *entity.Entity, _ geom.Rect, hint *geom.Rect) (*entity.Entity, error) {
	if len(f.inputs) == 0 {
		return nil, nil
	}
	sigma, radius := b.sigmas(f.effectTransform)
	pad := padding(radius)
	local := absPoint(e.Transform.TransformVector(pad))

	var limit *geom.Rect
	if hint != nil {
		limit = geom.RectPtr(hint.Expand(local.X, local.Y))
	}
	mips := filter.BlurRequiredMipCount
	if r.Context().BackendType() == gpu.BackendOpenGLES {
		mips = 1
	}
	snap, err := f.inputs[0].Snapshot(r, e, SnapshotOptions{
		CoverageLimit: limit,
		MipCount:      mips,
		Label:         "GaussianBlur",
	})
	if err != nil || snap == nil {
		return nil, err
	}
	if sigma.X < closeEnough && sigma.Y < closeEnough {
		return EntityFromSnapshot(snap, e.BlendMode, e.ClipDepth), nil
	}

	src := snap.Texture.Size()
	size := geom.ISize{Width: src.Width + 2*int(pad.X), Height: src.Height + 2*int(pad.Y)}

	// Copy the input into a target with a transparent gutter for the halo.
	padded, err := r.MakeSubpass("Gaussian Blur Filter", size, func(r *entity.ContentContext, pass gpu.RenderPass) error {
		opts := entity.OptionsFromPass(pass)
		opts.BlendMode = geom.BlendModeSource
		opts.Primitive = gpu.PrimitiveTriangleStrip
		return entity.Command{
			Label:    "Gaussian blur downsample",
			Pipeline: r.Pipeline(gpu.PipelineTexture, opts),
			Vertices: gpu.TexturedQuadStrip(geom.MakeXYWH(pad.X, pad.Y, float64(src.Width), float64(src.Height)), geom.MakeXYWH(0, 0, 1, 1)),
			Bindings: gpu.Bindings{
				Frame:    gpu.FrameInfo{MVP: gpu.OrthographicTransform(size)},
				Fragment: gpu.FragmentInfo{Texture: snap.Texture, Sampler: b.sampler(), Alpha: 1},
			},
		}.Encode(pass)
	}, false, 1)
	if err != nil {
		return nil, err
	}

	texel := geom.Pt(1/float64(size.Width), 1/float64(size.Height))
	vertical, err := b.blurPass(r, padded.RenderTargetTexture(), size, geom.Pt(0, texel.Y), sigma.Y, radius.Y)
	if err != nil {
		return nil, err
	}
	horizontal, err := b.blurPass(r, vertical, size, geom.Pt(texel.X, 0), sigma.X, radius.X)
	if err != nil {
		return nil, err
	}

	return EntityFromSnapshot(&Snapshot{
		Texture:   horizontal,
		Transform: snap.Transform.Multiply(geom.Translate(-pad.X, -pad.Y)),
		Sampler:   gpu.SamplerDescriptor{Linear: true},
		Opacity:   snap.Opacity,
	}, e.BlendMode, e.ClipDepth), nil
}

// blurPass convolves tex along dir. Sigmas too small to matter return tex
// unchanged.
func (b *gaussianBlur) blurPass(r *entity.ContentContext, tex gpu.Texture, size geom.ISize, dir geom.Point, sigma, radius float64) (gpu.Texture, error) {
	if sigma < closeEnough {
		return tex, nil
	}
	target, err := r.MakeSubpass("Gaussian Blur Filter", size, func(r *entity.ContentContext, pass gpu.RenderPass) error {
		opts := entity.OptionsFromPass(pass)
		opts.BlendMode = geom.BlendModeSource
		opts.Primitive = gpu.PrimitiveTriangleStrip
		return entity.Command{
			Label:    "Gaussian Blur Filter",
			Pipeline: r.Pipeline(gpu.PipelineGaussianBlur, opts),
			Vertices: gpu.TexturedQuadStrip(geom.MakeSize(size), geom.MakeXYWH(0, 0, 1, 1)),
			Bindings: gpu.Bindings{
				Frame: gpu.FrameInfo{MVP: gpu.OrthographicTransform(size)},
				Fragment: gpu.FragmentInfo{
					Texture:       tex,
					Sampler:       gpu.SamplerDescriptor{Linear: true, Decal: true},
					Alpha:         1,
					BlurDirection: dir,
					BlurSigma:     sigma,
					BlurRadius:    math.Round(radius),
				},
			},
		}.Encode(pass)
	}, false, 1)
	if err != nil {
		return nil, err
	}
	return target.RenderTargetTexture(), nil
}
