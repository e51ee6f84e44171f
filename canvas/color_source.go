package canvas

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// ColorSourceType identifies what a ColorSource shades with.
type ColorSourceType uint8

const (
	ColorSourceColor ColorSourceType = iota
	ColorSourceLinearGradient
	ColorSourceRadialGradient
	ColorSourceSweepGradient
	ColorSourceRuntimeEffect
)

// String returns the type name.
func (t ColorSourceType) String() string {
	switch t {
	case ColorSourceColor:
		return "Color"
	case ColorSourceLinearGradient:
		return "LinearGradient"
	case ColorSourceRadialGradient:
		return "RadialGradient"
	case ColorSourceSweepGradient:
		return "SweepGradient"
	case ColorSourceRuntimeEffect:
		return "RuntimeEffect"
	default:
		return "Unknown"
	}
}

// ColorSource describes how the inside of a shape is colored. The zero
// value shades with the paint color.
type ColorSource struct {
	kind ColorSourceType

	stops    []gpu.GradientStop
	tileMode gpu.TileMode
	effect   geom.Matrix

	start, end           geom.Point
	center               geom.Point
	radius               float64
	startAngle, endAngle float64

	runtime gpu.EffectFunc
}

// LinearGradient returns a gradient from start to end. offsets may be nil
// for evenly spaced colors.
func LinearGradient(start, end geom.Point, colors []geom.Color, offsets []float64, mode gpu.TileMode, effect geom.Matrix) *ColorSource {
	return &ColorSource{
		kind:     ColorSourceLinearGradient,
		stops:    contents.Stops(colors, offsets),
		tileMode: mode,
		effect:   effect,
		start:    start,
		end:      end,
	}
}

// RadialGradient returns a gradient by distance from center.
func RadialGradient(center geom.Point, radius float64, colors []geom.Color, offsets []float64, mode gpu.TileMode, effect geom.Matrix) *ColorSource {
	return &ColorSource{
		kind:     ColorSourceRadialGradient,
		stops:    contents.Stops(colors, offsets),
		tileMode: mode,
		effect:   effect,
		center:   center,
		radius:   radius,
	}
}

// SweepGradient returns a gradient by angle around center, in radians.
func SweepGradient(center geom.Point, startAngle, endAngle float64, colors []geom.Color, offsets []float64, mode gpu.TileMode, effect geom.Matrix) *ColorSource {
	return &ColorSource{
		kind:       ColorSourceSweepGradient,
		stops:      contents.Stops(colors, offsets),
		tileMode:   mode,
		effect:     effect,
		center:     center,
		startAngle: startAngle,
		endAngle:   endAngle,
	}
}

// RuntimeEffect returns a source shading every point with fn.
func RuntimeEffect(fn gpu.EffectFunc, effect geom.Matrix) *ColorSource {
	return &ColorSource{kind: ColorSourceRuntimeEffect, runtime: fn, effect: effect}
}

// Type returns the kind of the source. A nil source is a plain color.
func (s *ColorSource) Type() ColorSourceType {
	if s == nil {
		return ColorSourceColor
	}
	return s.kind
}

// shadingContents is what every color source produces.
type shadingContents interface {
	entity.Contents
	SetOpacity(opacity float64)
	SetEffectTransform(m geom.Matrix)
}

// contents returns contents shading g with the source, colored and faded
// by the paint.
func (s *ColorSource) contents(p *Paint, g geometry.Geometry) entity.Contents {
	var c shadingContents
	switch s.Type() {
	case ColorSourceLinearGradient:
		c = contents.NewLinearGradient(g, s.start, s.end, s.stops, s.tileMode)
	case ColorSourceRadialGradient:
		c = contents.NewRadialGradient(g, s.center, s.radius, s.stops, s.tileMode)
	case ColorSourceSweepGradient:
		c = contents.NewSweepGradient(g, s.center, s.startAngle, s.endAngle, s.stops, s.tileMode)
	case ColorSourceRuntimeEffect:
		c = contents.NewRuntimeEffect(g, s.runtime)
	default:
		return contents.NewSolidColor(g, p.Color)
	}
	c.SetOpacity(p.Color.A)
	c.SetEffectTransform(s.effect)
	return c
}
