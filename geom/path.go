package geom

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// FillType selects the winding rule used to fill a path.
type FillType uint8

const (
	FillNonZero FillType = iota
	FillOdd
)

// Convexity is a hint recorded by the shape helpers.
type Convexity uint8

const (
	ConvexityUnknown Convexity = iota
	ConvexityConvex
)

// Path represents a vector path.
type Path struct {
	elements  []PathElement
	start     Point
	current   Point
	fillType  FillType
	convexity Convexity
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start, p.current = pt, pt
	return p
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	return p
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
	return p
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: pt})
	p.current = pt
	return p
}

// Close closes the current contour by drawing a line to its start point.
func (p *Path) Close() *Path {
	p.elements = append(p.elements, Close{})
	p.current = p.start
	return p
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// FillType returns the winding rule.
func (p *Path) FillType() FillType { return p.fillType }

// SetFillType sets the winding rule.
func (p *Path) SetFillType(t FillType) *Path {
	p.fillType = t
	return p
}

// IsConvex reports whether the path is known to be a single convex contour.
func (p *Path) IsConvex() bool { return p.convexity == ConvexityConvex }

// SetConvexity records a convexity hint.
func (p *Path) SetConvexity(c Convexity) *Path {
	p.convexity = c
	return p
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(r Rect) *Path {
	p.MoveTo(r.MinX, r.MinY)
	p.LineTo(r.MaxX, r.MinY)
	p.LineTo(r.MaxX, r.MaxY)
	p.LineTo(r.MinX, r.MaxY)
	p.Close()
	return p.markConvexIfSingle()
}

// Ellipse adds an ellipse inscribed in r using cubic Bezier curves.
func (p *Path) Ellipse(r Rect) *Path {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	c := r.Center()
	rx, ry := r.Width()/2, r.Height()/2
	ox, oy := rx*k, ry*k

	p.MoveTo(c.X+rx, c.Y)
	p.CubicTo(c.X+rx, c.Y+oy, c.X+ox, c.Y+ry, c.X, c.Y+ry)
	p.CubicTo(c.X-ox, c.Y+ry, c.X-rx, c.Y+oy, c.X-rx, c.Y)
	p.CubicTo(c.X-rx, c.Y-oy, c.X-ox, c.Y-ry, c.X, c.Y-ry)
	p.CubicTo(c.X+ox, c.Y-ry, c.X+rx, c.Y-oy, c.X+rx, c.Y)
	p.Close()
	return p.markConvexIfSingle()
}

// Circle adds a circle to the path.
func (p *Path) Circle(center Point, radius float64) *Path {
	return p.Ellipse(MakeLTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius))
}

// RoundedRectangle adds a rectangle with elliptical corners of the given
// radii. Radii are clamped to half of each dimension.
func (p *Path) RoundedRectangle(r Rect, radii Size) *Path {
	rx := math.Min(radii.Width, r.Width()/2)
	ry := math.Min(radii.Height, r.Height()/2)
	if rx <= 0 || ry <= 0 {
		return p.Rectangle(r)
	}
	const k = 0.5522847498307936
	ox, oy := rx*k, ry*k

	p.MoveTo(r.MinX+rx, r.MinY)
	p.LineTo(r.MaxX-rx, r.MinY)
	p.CubicTo(r.MaxX-rx+ox, r.MinY, r.MaxX, r.MinY+ry-oy, r.MaxX, r.MinY+ry)
	p.LineTo(r.MaxX, r.MaxY-ry)
	p.CubicTo(r.MaxX, r.MaxY-ry+oy, r.MaxX-rx+ox, r.MaxY, r.MaxX-rx, r.MaxY)
	p.LineTo(r.MinX+rx, r.MaxY)
	p.CubicTo(r.MinX+rx-ox, r.MaxY, r.MinX, r.MaxY-ry+oy, r.MinX, r.MaxY-ry)
	p.LineTo(r.MinX, r.MinY+ry)
	p.CubicTo(r.MinX, r.MinY+ry-oy, r.MinX+rx-ox, r.MinY, r.MinX+rx, r.MinY)
	p.Close()
	return p.markConvexIfSingle()
}

func (p *Path) markConvexIfSingle() *Path {
	moves := 0
	for _, e := range p.elements {
		if _, ok := e.(MoveTo); ok {
			moves++
		}
	}
	if moves == 1 {
		p.convexity = ConvexityConvex
	} else {
		p.convexity = ConvexityUnknown
	}
	return p
}

// Bounds returns the bounds of all on-curve and control points.
func (p *Path) Bounds() (Rect, bool) {
	pts := make([]Point, 0, len(p.elements)*2)
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pts = append(pts, e.Point)
		case LineTo:
			pts = append(pts, e.Point)
		case QuadTo:
			pts = append(pts, e.Control, e.Point)
		case CubicTo:
			pts = append(pts, e.Control1, e.Control2, e.Point)
		}
	}
	return MakePointBounds(pts)
}

// Transform applies a transformation matrix to all points in the path.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	result.fillType = p.fillType
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			c := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	// Affine maps preserve convexity.
	result.convexity = p.convexity
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := *p
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	return &result
}

// RoundRect is a rectangle with uniform elliptical corners.
type RoundRect struct {
	Rect  Rect
	Radii Size
}

// Path returns the outline of rr.
func (rr RoundRect) Path() *Path {
	return NewPath().RoundedRectangle(rr.Rect, rr.Radii)
}
