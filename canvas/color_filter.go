package canvas

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/internal/blend"
	"github.com/gogpu/compositor/internal/color"
	"github.com/gogpu/compositor/internal/filter"
)

// ColorMatrix is a 4x5 row-major color matrix applied to straight-alpha
// colors. The fifth column is an offset.
type ColorMatrix = filter.ColorMatrix

// ColorFilter maps every color a draw produces. Contents that can fold the
// filter into their own colors use the CPU proc; everything else is
// wrapped in a filter contents.
type ColorFilter interface {
	// Proc returns the filter as a function of straight-alpha colors.
	Proc() entity.ColorFilterProc

	// WrapInput returns in filtered on the GPU.
	WrapInput(in contents.FilterInput, absorbOpacity bool) *contents.FilterContents

	// AffectsTransparentBlack reports whether the filter makes transparent
	// pixels visible.
	AffectsTransparentBlack() bool
}

// BlendColorFilter blends a constant color over every pixel.
type BlendColorFilter struct {
	Mode  geom.BlendMode
	Color geom.Color
}

// NewBlendColorFilter returns a filter blending c with mode.
func NewBlendColorFilter(mode geom.BlendMode, c geom.Color) *BlendColorFilter {
	return &BlendColorFilter{Mode: mode, Color: c}
}

// Proc implements ColorFilter.
func (f *BlendColorFilter) Proc() entity.ColorFilterProc {
	mode, src := f.Mode, f.Color
	return func(dst geom.Color) geom.Color {
		return blend.Colors(dst, src, mode)
	}
}

// WrapInput implements ColorFilter. The blend always absorbs the opacity of
// its input.
func (f *BlendColorFilter) WrapInput(in contents.FilterInput, _ bool) *contents.FilterContents {
	c := f.Color
	return contents.NewBlend([]contents.FilterInput{in}, f.Mode, &c)
}

// AffectsTransparentBlack implements ColorFilter.
func (f *BlendColorFilter) AffectsTransparentBlack() bool {
	return !f.Proc()(geom.BlackTransparent).ApproxEqual(geom.BlackTransparent, 1e-6)
}

// MatrixColorFilter transforms colors with a color matrix.
type MatrixColorFilter struct {
	Matrix ColorMatrix
}

// NewMatrixColorFilter returns a filter applying m.
func NewMatrixColorFilter(m ColorMatrix) *MatrixColorFilter {
	return &MatrixColorFilter{Matrix: m}
}

// Proc implements ColorFilter.
func (f *MatrixColorFilter) Proc() entity.ColorFilterProc { return f.Matrix.Apply }

// WrapInput implements ColorFilter.
func (f *MatrixColorFilter) WrapInput(in contents.FilterInput, absorbOpacity bool) *contents.FilterContents {
	return contents.NewColorMatrix(in, f.Matrix, absorbOpacity)
}

// AffectsTransparentBlack implements ColorFilter.
func (f *MatrixColorFilter) AffectsTransparentBlack() bool { return f.Matrix.AffectsTransparentBlack() }

// SRGBToLinearFilter decodes sRGB colors to linear ones.
type SRGBToLinearFilter struct{}

// Proc implements ColorFilter.
func (SRGBToLinearFilter) Proc() entity.ColorFilterProc { return color.SRGBToLinearColor }

// WrapInput implements ColorFilter.
func (SRGBToLinearFilter) WrapInput(in contents.FilterInput, absorbOpacity bool) *contents.FilterContents {
	return contents.NewSRGBToLinear(in, absorbOpacity)
}

// AffectsTransparentBlack implements ColorFilter.
func (SRGBToLinearFilter) AffectsTransparentBlack() bool { return false }

// LinearToSRGBFilter encodes linear colors as sRGB.
type LinearToSRGBFilter struct{}

// Proc implements ColorFilter.
func (LinearToSRGBFilter) Proc() entity.ColorFilterProc { return color.LinearToSRGBColor }

// WrapInput implements ColorFilter.
func (LinearToSRGBFilter) WrapInput(in contents.FilterInput, absorbOpacity bool) *contents.FilterContents {
	return contents.NewLinearToSRGB(in, absorbOpacity)
}

// AffectsTransparentBlack implements ColorFilter.
func (LinearToSRGBFilter) AffectsTransparentBlack() bool { return false }
