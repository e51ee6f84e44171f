package geom

import (
	"image/color"
	"math"
)

// Color represents a color with straight (unpremultiplied) alpha.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black            = Color{R: 0, G: 0, B: 0, A: 1}
	White            = Color{R: 1, G: 1, B: 1, A: 1}
	Red              = Color{R: 1, G: 0, B: 0, A: 1}
	Green            = Color{R: 0, G: 1, B: 0, A: 1}
	Blue             = Color{R: 0, G: 0, B: 1, A: 1}
	Yellow           = Color{R: 1, G: 1, B: 0, A: 1}
	Cyan             = Color{R: 0, G: 1, B: 1, A: 1}
	Magenta          = Color{R: 1, G: 0, B: 1, A: 1}
	CornflowerBlue   = Color{R: 100.0 / 255, G: 149.0 / 255, B: 237.0 / 255, A: 1}
	BlackTransparent = Color{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// NRGBA converts c to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Premultiply returns a premultiplied color.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply returns an unpremultiplied color.
func (c Color) Unpremultiply() Color {
	if c.A == 0 {
		return Color{}
	}
	return Color{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// IsOpaque reports whether c has full alpha.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

// IsTransparent reports whether c has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// Clamp clamps every component to [0, 1].
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Add adds two colors component-wise.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Mul scales every component by s.
func (c Color) Mul(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// ApproxEqual reports whether every component of c and o differs by at most
// eps.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps && math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps && math.Abs(c.A-o.A) <= eps
}

// ColorHSB creates a color from hue, saturation and brightness.
// Hue is in [0, 1] and wraps around.
func ColorHSB(h, s, b, a float64) Color {
	h = (h - math.Floor(h)) * 6
	sector := int(h)
	f := h - float64(sector)
	p := b * (1 - s)
	q := b * (1 - s*f)
	t := b * (1 - s*(1-f))

	switch sector {
	case 0:
		return Color{R: b, G: t, B: p, A: a}
	case 1:
		return Color{R: q, G: b, B: p, A: a}
	case 2:
		return Color{R: p, G: b, B: t, A: a}
	case 3:
		return Color{R: p, G: q, B: b, A: a}
	case 4:
		return Color{R: t, G: p, B: b, A: a}
	default:
		return Color{R: b, G: p, B: q, A: a}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp255(v float64) float64 {
	return math.Round(math.Max(0, math.Min(255, v)))
}
