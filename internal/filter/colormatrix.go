package filter

import (
	"math"

	"github.com/gogpu/compositor/geom"
)

// ColorMatrix is a row-major 4x5 matrix applied to straight-alpha RGBA:
//
//	R' = m[0]*R + m[1]*G + m[2]*B + m[3]*A + m[4]
//	G' = m[5]*R + ...
//
// Offsets are in normalized units, not 0..255.
type ColorMatrix [20]float64

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// IdentityColorMatrix returns the matrix that leaves colors unchanged.
func IdentityColorMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// SaturationMatrix interpolates between grayscale (0) and identity (1).
func SaturationMatrix(factor float64) ColorMatrix {
	inv := 1 - factor
	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// GrayscaleMatrix collapses colors onto their luminance.
func GrayscaleMatrix() ColorMatrix {
	return SaturationMatrix(0)
}

// InvertMatrix inverts RGB and keeps alpha.
func InvertMatrix() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 0, 1,
		0, -1, 0, 0, 1,
		0, 0, -1, 0, 1,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix adds amount to every color channel.
func BrightnessMatrix(amount float64) ColorMatrix {
	m := IdentityColorMatrix()
	m[4], m[9], m[14] = amount, amount, amount
	return m
}

// OpacityMatrix scales alpha by factor.
func OpacityMatrix(factor float64) ColorMatrix {
	m := IdentityColorMatrix()
	m[18] = factor
	return m
}

// HueRotateMatrix rotates hue by degrees.
func HueRotateMatrix(degrees float64) ColorMatrix {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return ColorMatrix{
		lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB), 0, 0,
		lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283, 0, 0,
		lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply transforms a straight-alpha color and clamps the result.
func (m ColorMatrix) Apply(c geom.Color) geom.Color {
	return geom.Color{
		R: m[0]*c.R + m[1]*c.G + m[2]*c.B + m[3]*c.A + m[4],
		G: m[5]*c.R + m[6]*c.G + m[7]*c.B + m[8]*c.A + m[9],
		B: m[10]*c.R + m[11]*c.G + m[12]*c.B + m[13]*c.A + m[14],
		A: m[15]*c.R + m[16]*c.G + m[17]*c.B + m[18]*c.A + m[19],
	}.Clamp()
}

// AffectsTransparentBlack reports whether the matrix maps transparent black
// to something visible. Such a filter changes pixels outside the drawn
// geometry.
func (m ColorMatrix) AffectsTransparentBlack() bool {
	return m[19] != 0
}

// Then returns the matrix that applies m first and then o.
func (m ColorMatrix) Then(o ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += o[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = o[row*5+0]*m[4] + o[row*5+1]*m[9] +
			o[row*5+2]*m[14] + o[row*5+3]*m[19] + o[row*5+4]
	}
	return r
}
