package canvas

import (
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/filter"
)

// ImageFilter transforms the rendered image of a draw or a layer.
type ImageFilter interface {
	// WrapInput returns in with the filter applied.
	WrapInput(in contents.FilterInput) *contents.FilterContents

	// RequiredMipCount is the number of mip levels the filter wants its
	// input texture to have.
	RequiredMipCount() int
}

// BlurImageFilter is a gaussian blur.
type BlurImageFilter struct {
	SigmaX, SigmaY float64
	TileMode       gpu.TileMode
}

// NewBlurImageFilter returns a blur with the given sigmas.
func NewBlurImageFilter(sigmaX, sigmaY float64, mode gpu.TileMode) *BlurImageFilter {
	return &BlurImageFilter{SigmaX: sigmaX, SigmaY: sigmaY, TileMode: mode}
}

// WrapInput implements ImageFilter.
func (f *BlurImageFilter) WrapInput(in contents.FilterInput) *contents.FilterContents {
	return contents.NewGaussianBlur(in, f.SigmaX, f.SigmaY, f.TileMode)
}

// RequiredMipCount implements ImageFilter.
func (f *BlurImageFilter) RequiredMipCount() int { return filter.BlurRequiredMipCount }

// MatrixImageFilter transforms its input.
type MatrixImageFilter struct {
	Matrix  geom.Matrix
	Sampler gpu.SamplerDescriptor
}

// NewMatrixImageFilter returns a filter transforming its input by m.
func NewMatrixImageFilter(m geom.Matrix, sampler gpu.SamplerDescriptor) *MatrixImageFilter {
	return &MatrixImageFilter{Matrix: m, Sampler: sampler}
}

// WrapInput implements ImageFilter.
func (f *MatrixImageFilter) WrapInput(in contents.FilterInput) *contents.FilterContents {
	return contents.NewMatrix(in, f.Matrix, f.Sampler)
}

// RequiredMipCount implements ImageFilter.
func (f *MatrixImageFilter) RequiredMipCount() int { return 1 }

// ColorImageFilter applies a color filter to its input.
type ColorImageFilter struct {
	Filter ColorFilter
}

// NewColorImageFilter returns cf as an image filter.
func NewColorImageFilter(cf ColorFilter) *ColorImageFilter {
	return &ColorImageFilter{Filter: cf}
}

// WrapInput implements ImageFilter.
func (f *ColorImageFilter) WrapInput(in contents.FilterInput) *contents.FilterContents {
	return f.Filter.WrapInput(in, false)
}

// RequiredMipCount implements ImageFilter.
func (f *ColorImageFilter) RequiredMipCount() int { return 1 }

// ComposeImageFilter applies Inner and then Outer.
type ComposeImageFilter struct {
	Outer, Inner ImageFilter
}

// NewComposeImageFilter returns outer applied to the result of inner.
func NewComposeImageFilter(outer, inner ImageFilter) *ComposeImageFilter {
	return &ComposeImageFilter{Outer: outer, Inner: inner}
}

// WrapInput implements ImageFilter.
func (f *ComposeImageFilter) WrapInput(in contents.FilterInput) *contents.FilterContents {
	return f.Outer.WrapInput(contents.InputFromContents(f.Inner.WrapInput(in)))
}

// RequiredMipCount implements ImageFilter.
func (f *ComposeImageFilter) RequiredMipCount() int { return 1 }
