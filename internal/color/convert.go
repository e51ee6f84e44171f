// Package color provides sRGB transfer functions.
//
// Alpha is always linear; only RGB components are converted.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
package color

import (
	"math"

	"github.com/gogpu/compositor/geom"
)

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// SRGBToLinearColor converts a straight-alpha color from sRGB to linear.
func SRGBToLinearColor(c geom.Color) geom.Color {
	return geom.Color{R: SRGBToLinear(c.R), G: SRGBToLinear(c.G), B: SRGBToLinear(c.B), A: c.A}
}

// LinearToSRGBColor converts a straight-alpha color from linear to sRGB.
func LinearToSRGBColor(c geom.Color) geom.Color {
	return geom.Color{R: LinearToSRGB(c.R), G: LinearToSRGB(c.G), B: LinearToSRGB(c.B), A: c.A}
}

// SRGBToLinearPremultiplied converts a premultiplied color, unpremultiplying
// around the transfer function.
func SRGBToLinearPremultiplied(c geom.Color) geom.Color {
	return SRGBToLinearColor(c.Unpremultiply()).Premultiply()
}

// LinearToSRGBPremultiplied converts a premultiplied color, unpremultiplying
// around the transfer function.
func LinearToSRGBPremultiplied(c geom.Color) geom.Color {
	return LinearToSRGBColor(c.Unpremultiply()).Premultiply()
}
