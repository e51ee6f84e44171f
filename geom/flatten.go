package geom

import "math"

// DefaultTolerance is the flattening tolerance in pixels.
const DefaultTolerance = 0.1

// Polyline is a flattened contour. Closing points are implied and not
// repeated.
type Polyline struct {
	Points []Point
	Closed bool
}

// Contours flattens the path into closed polylines, one per contour, with
// curves subdivided until they are within tolerance of the true curve.
// Closing points are implied and not repeated.
func (p *Path) Contours(tolerance float64) [][]Point {
	var contours [][]Point
	for _, l := range p.Polylines(tolerance) {
		if len(l.Points) >= 2 {
			contours = append(contours, l.Points)
		}
	}
	return contours
}

// Polylines flattens the path like Contours and keeps whether each contour
// was explicitly closed. Single-point contours are kept so strokes can cap
// them.
func (p *Path) Polylines(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var lines []Polyline
	var cur []Point
	var current Point

	flush := func(closed bool) {
		if len(cur) >= 1 {
			lines = append(lines, Polyline{Points: cur, Closed: closed})
		}
		cur = nil
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			current = e.Point
			cur = append(cur, current)
		case LineTo:
			if len(cur) == 0 {
				cur = append(cur, current)
			}
			current = e.Point
			cur = append(cur, current)
		case QuadTo:
			if len(cur) == 0 {
				cur = append(cur, current)
			}
			flattenQuadratic(current, e.Control, e.Point, tolerance, &cur)
			current = e.Point
		case CubicTo:
			if len(cur) == 0 {
				cur = append(cur, current)
			}
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, &cur)
			current = e.Point
		case Close:
			if len(cur) > 0 {
				current = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return lines
}

// flattenQuadratic recursively subdivides a quadratic Bezier curve.
func flattenQuadratic(p0, p1, p2 Point, tolerance float64, points *[]Point) {
	if distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	flattenQuadratic(p0, q0, q2, tolerance, points)
	flattenQuadratic(q2, q1, p2, tolerance, points)
}

// flattenCubic recursively subdivides a cubic Bezier curve using de
// Casteljau's algorithm.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, points *[]Point) {
	if math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < tolerance {
		*points = append(*points, p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	flattenCubic(p0, q0, r0, s, tolerance, points)
	flattenCubic(s, r1, q2, p3, tolerance, points)
}

// distanceToLine calculates the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	switch {
	case t < 0:
		return p.Sub(a).Length()
	case t > 1:
		return p.Sub(b).Length()
	}
	return p.Sub(a.Add(ab.Mul(t))).Length()
}
