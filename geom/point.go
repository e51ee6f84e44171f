package geom

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the point reflected through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Size is a floating point extent.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// ISize is an integer extent, used for textures and render targets.
type ISize struct {
	Width, Height int
}

// IsEmpty reports whether either dimension is not positive.
func (s ISize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns Width*Height.
func (s ISize) Area() int {
	return s.Width * s.Height
}

// Size converts to a floating point Size.
func (s ISize) Size() Size {
	return Size{Width: float64(s.Width), Height: float64(s.Height)}
}

// MipCount returns the length of a full mip chain for this size.
func (s ISize) MipCount() int {
	if s.IsEmpty() {
		return 1
	}
	n := 1
	for w, h := s.Width, s.Height; w > 1 || h > 1; n++ {
		w, h = w/2, h/2
	}
	return n
}
