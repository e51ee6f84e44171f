package geom

import (
	"fmt"
	"math"
)

// Matrix is a 4x4 transformation matrix in column-major order:
//
//	| m[0]  m[4]  m[8]  m[12] |
//	| m[1]  m[5]  m[9]  m[13] |
//	| m[2]  m[6]  m[10] m[14] |
//	| m[3]  m[7]  m[11] m[15] |
//
// Points are column vectors, so m.Multiply(o) applies o first. The zero
// value is not the identity; use Identity.
type Matrix [16]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	m := Identity()
	m[12], m[13] = x, y
	return m
}

// TranslatePoint creates a translation matrix from a vector.
func TranslatePoint(p Point) Matrix {
	return Translate(p.X, p.Y)
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	m := Identity()
	m[0], m[5] = x, y
	return m
}

// RotateZ creates a rotation about the Z axis (angle in radians).
func RotateZ(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	m := Identity()
	m[0], m[1] = cos, sin
	m[4], m[5] = -sin, cos
	return m
}

// Skew creates a shear matrix.
func Skew(sx, sy float64) Matrix {
	m := Identity()
	m[4] = sx
	m[1] = sy
	return m
}

// Multiply returns m * o.
func (m Matrix) Multiply(o Matrix) Matrix {
	var out Matrix
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// TransformPoint applies the transformation to a point, including the
// perspective divide.
func (m Matrix) TransformPoint(p Point) Point {
	x := m[0]*p.X + m[4]*p.Y + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[13]
	w := m[3]*p.X + m[7]*p.Y + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Point{X: x, Y: y}
}

// TransformVector applies the transformation without translation.
func (m Matrix) TransformVector(v Point) Point {
	return Point{X: m[0]*v.X + m[4]*v.Y, Y: m[1]*v.X + m[5]*v.Y}
}

// Translation returns the translation component.
func (m Matrix) Translation() Point {
	return Point{X: m[12], Y: m[13]}
}

// Basis returns m with its translation removed.
func (m Matrix) Basis() Matrix {
	m[12], m[13], m[14] = 0, 0, 0
	return m
}

// BasisLengths returns the lengths of the X and Y basis vectors.
func (m Matrix) BasisLengths() (float64, float64) {
	return math.Hypot(m[0], m[1]), math.Hypot(m[4], m[5])
}

// MaxBasisLengthXY returns the larger of the X and Y basis lengths.
func (m Matrix) MaxBasisLengthXY() float64 {
	x, y := m.BasisLengths()
	return math.Max(x, y)
}

// Determinant returns the determinant of m.
func (m Matrix) Determinant() float64 {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	return b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
}

// Invert returns the inverse of m. A singular matrix yields the zero
// matrix.
func (m Matrix) Invert() Matrix {
	// Cofactor expansion with the same intermediate terms as Determinant.
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 {
		return Matrix{}
	}
	inv := 1 / det

	return Matrix{
		(a11*b11 - a12*b10 + a13*b09) * inv,
		(a02*b10 - a01*b11 - a03*b09) * inv,
		(a31*b05 - a32*b04 + a33*b03) * inv,
		(a22*b04 - a21*b05 - a23*b03) * inv,
		(a12*b08 - a10*b11 - a13*b07) * inv,
		(a00*b11 - a02*b08 + a03*b07) * inv,
		(a32*b02 - a30*b05 - a33*b01) * inv,
		(a20*b05 - a22*b02 + a23*b01) * inv,
		(a10*b10 - a11*b08 + a13*b06) * inv,
		(a01*b08 - a00*b10 - a03*b06) * inv,
		(a30*b04 - a31*b02 + a33*b00) * inv,
		(a21*b02 - a20*b04 - a23*b00) * inv,
		(a11*b07 - a10*b09 - a12*b06) * inv,
		(a00*b09 - a01*b07 + a02*b06) * inv,
		(a31*b01 - a30*b03 - a32*b00) * inv,
		(a20*b03 - a21*b01 + a22*b00) * inv,
	}
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslationOnly reports whether m only translates.
func (m Matrix) IsTranslationOnly() bool {
	return m.Basis() == Identity()
}

// IsTranslationScaleOnly reports whether m only scales and translates, so
// axis-aligned rects stay axis-aligned and exact.
func (m Matrix) IsTranslationScaleOnly() bool {
	return m[0] != 0 && m[1] == 0 && m[2] == 0 && m[3] == 0 &&
		m[4] == 0 && m[5] != 0 && m[6] == 0 && m[7] == 0 &&
		m[8] == 0 && m[9] == 0 && m[11] == 0 &&
		m[15] == 1
}

// String returns a compact affine representation for debugging.
func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", m[0], m[4], m[12], m[1], m[5], m[13])
}
