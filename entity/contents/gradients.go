package contents

import (
	"slices"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Stops pairs colors with offsets. Missing offsets are spread evenly over
// [0, 1]; offsets are clamped to be non-decreasing.
func Stops(colors []geom.Color, offsets []float64) []gpu.GradientStop {
	stops := make([]gpu.GradientStop, len(colors))
	prev := 0.0
	for i, c := range colors {
		var o float64
		switch {
		case i < len(offsets):
			o = offsets[i]
		case len(colors) > 1:
			o = float64(i) / float64(len(colors)-1)
		}
		o = max(prev, min(1, o))
		stops[i] = gpu.GradientStop{Offset: o, Color: c}
		prev = o
	}
	return stops
}

// gradient is the part shared by linear, radial and sweep gradients.
type gradient struct {
	ColorSource
	stops    []gpu.GradientStop
	tileMode gpu.TileMode
}

func newGradient(g geometry.Geometry, stops []gpu.GradientStop, mode gpu.TileMode) gradient {
	return gradient{ColorSource: newColorSource(g), stops: slices.Clone(stops), tileMode: mode}
}

// Stops returns the color stops.
func (g *gradient) Stops() []gpu.GradientStop { return g.stops }

// TileMode returns how the gradient extends past its stops.
func (g *gradient) TileMode() gpu.TileMode { return g.tileMode }

// IsOpaque implements entity.Contents.
func (g *gradient) IsOpaque() bool {
	if g.OpacityFactor() < 1 || g.tileMode == gpu.TileDecal {
		return false
	}
	for _, s := range g.stops {
		if !s.Color.IsOpaque() {
			return false
		}
	}
	return true
}

// ApplyColorFilter implements entity.Contents.
func (g *gradient) ApplyColorFilter(proc entity.ColorFilterProc) bool {
	for i := range g.stops {
		g.stops[i].Color = proc(g.stops[i].Color)
	}
	return true
}

// CanApplyColorFilter reports true.
func (g *gradient) CanApplyColorFilter() bool { return true }

func (g *gradient) render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass, label string, info gpu.GradientInfo) error {
	info.Stops = g.stops
	info.TileMode = g.tileMode
	info.EffectTransform = g.InverseEffectTransform()
	return drawGeometry(r, e, pass, g.geometry, label, gpu.PipelineGradient, gpu.FragmentInfo{
		Gradient: &info,
		Alpha:    g.OpacityFactor(),
	})
}

// LinearGradient shades along the line from Start to End.
type LinearGradient struct {
	gradient
	start, end geom.Point
}

// NewLinearGradient returns a linear gradient over g.
func NewLinearGradient(g geometry.Geometry, start, end geom.Point, stops []gpu.GradientStop, mode gpu.TileMode) *LinearGradient {
	return &LinearGradient{gradient: newGradient(g, stops, mode), start: start, end: end}
}

// Render implements entity.Contents.
func (l *LinearGradient) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	return l.render(r, e, pass, "LinearGradientFill", gpu.GradientInfo{
		Kind:  gpu.GradientLinear,
		Start: l.start,
		End:   l.end,
	})
}

// RadialGradient shades by distance from a center.
type RadialGradient struct {
	gradient
	center geom.Point
	radius float64
}

// NewRadialGradient returns a radial gradient over g.
func NewRadialGradient(g geometry.Geometry, center geom.Point, radius float64, stops []gpu.GradientStop, mode gpu.TileMode) *RadialGradient {
	return &RadialGradient{gradient: newGradient(g, stops, mode), center: center, radius: radius}
}

// Render implements entity.Contents.
func (rg *RadialGradient) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	return rg.render(r, e, pass, "RadialGradientFill", gpu.GradientInfo{
		Kind:   gpu.GradientRadial,
		Center: rg.center,
		Radius: rg.radius,
	})
}

// SweepGradient shades by angle around a center. Angles are in radians,
// clockwise from the positive x axis.
type SweepGradient struct {
	gradient
	center               geom.Point
	startAngle, endAngle float64
}

// NewSweepGradient returns a sweep gradient over g.
func NewSweepGradient(g geometry.Geometry, center geom.Point, startAngle, endAngle float64, stops []gpu.GradientStop, mode gpu.TileMode) *SweepGradient {
	return &SweepGradient{
		gradient:   newGradient(g, stops, mode),
		center:     center,
		startAngle: startAngle,
		endAngle:   endAngle,
	}
}

// Render implements entity.Contents.
func (s *SweepGradient) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	return s.render(r, e, pass, "SweepGradientFill", gpu.GradientInfo{
		Kind:       gpu.GradientSweep,
		Center:     s.center,
		StartAngle: s.startAngle,
		EndAngle:   s.endAngle,
	})
}
