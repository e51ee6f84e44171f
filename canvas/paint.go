package canvas

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Style says whether shapes are filled or stroked.
type Style uint8

const (
	// StyleFill fills the inside of a shape.
	StyleFill Style = iota
	// StyleStroke strokes the outline of a shape.
	StyleStroke
)

// MaskBlur blurs the coverage of a draw.
type MaskBlur struct {
	Sigma float64
}

// Paint holds the styling of a draw or a layer.
type Paint struct {
	// Color is the draw color. Its alpha is the opacity of gradients,
	// images and layers.
	Color geom.Color

	// ColorSource shades the draw. Nil uses Color.
	ColorSource *ColorSource

	Style       Style
	StrokeWidth float64
	StrokeMiter float64
	StrokeCap   geometry.Cap
	StrokeJoin  geometry.Join

	BlendMode geom.BlendMode

	ColorFilter ColorFilter
	ImageFilter ImageFilter
	MaskBlur    *MaskBlur
}

// NewPaint returns a fill paint of color c with SourceOver blending.
func NewPaint(c geom.Color) *Paint {
	return &Paint{
		Color:       c,
		StrokeMiter: 4,
		StrokeCap:   geometry.CapButt,
		StrokeJoin:  geometry.JoinMiter,
		BlendMode:   geom.BlendModeSourceOver,
	}
}

// defaultPaint is used for nil paints.
func defaultPaint(p *Paint) *Paint {
	if p == nil {
		return NewPaint(geom.Black)
	}
	return p
}

// HasColorFilter reports whether p has a color filter.
func (p *Paint) HasColorFilter() bool { return p.ColorFilter != nil }

// contentsForGeometry shades g with p and applies the filters of p. A color
// filter is folded into the contents when they accept it.
func (p *Paint) contentsForGeometry(g geometry.Geometry) entity.Contents {
	c := p.ColorSource.contents(p, g)

	needsColorFilter := p.HasColorFilter()
	if needsColorFilter && c.ApplyColorFilter(p.ColorFilter.Proc()) {
		needsColorFilter = false
	}
	if needsColorFilter {
		c = p.ColorFilter.WrapInput(contents.InputFromContents(c), true)
	}
	if p.MaskBlur != nil && p.MaskBlur.Sigma > 0 {
		c = p.maskBlur(c)
	}
	return p.withImageFilter(c)
}

// withFilters applies the color filter and the image filter of p to c.
func (p *Paint) withFilters(c entity.Contents) entity.Contents {
	if p.HasColorFilter() {
		c = p.ColorFilter.WrapInput(contents.InputFromContents(c), true)
	}
	return p.withImageFilter(c)
}

func (p *Paint) withImageFilter(c entity.Contents) entity.Contents {
	if p.ImageFilter == nil {
		return c
	}
	f := p.ImageFilter.WrapInput(contents.InputFromContents(c))
	f.SetRenderingMode(contents.RenderingDirect)
	return f
}

func (p *Paint) maskBlur(c entity.Contents) entity.Contents {
	return contents.NewGaussianBlur(contents.InputFromContents(c), p.MaskBlur.Sigma, p.MaskBlur.Sigma, gpu.TileDecal)
}

// withFiltersForSubpassTarget applies the filters of a layer paint to the
// texture contents of its rendered subpass.
func (p *Paint) withFiltersForSubpassTarget(c entity.Contents, effect geom.Matrix) entity.Contents {
	if p.ImageFilter != nil {
		f := p.ImageFilter.WrapInput(contents.InputFromContents(c))
		f.SetEffectTransform(effect)
		f.SetRenderingMode(contents.RenderingSubpass)
		c = f
	}
	if p.HasColorFilter() {
		c = p.ColorFilter.WrapInput(contents.InputFromContents(c), true)
	}
	return c
}

// imageFilterFor wraps in with the image filter of a layer paint.
func (p *Paint) imageFilterFor(in contents.FilterInput, effect geom.Matrix) *contents.FilterContents {
	if p.ImageFilter == nil {
		return nil
	}
	f := p.ImageFilter.WrapInput(in)
	f.SetEffectTransform(effect)
	f.SetRenderingMode(contents.RenderingSubpass)
	return f
}

// geometryForPath returns the fill or stroke geometry of path.
func (p *Paint) geometryForPath(path *geom.Path) geometry.Geometry {
	if p.Style == StyleStroke {
		return geometry.StrokePath{
			Path:       path,
			Width:      p.StrokeWidth,
			MiterLimit: p.StrokeMiter,
			Cap:        p.StrokeCap,
			Join:       p.StrokeJoin,
		}
	}
	return geometry.FillPath{Path: path}
}
