package geom

import "math"

// Rect is an axis-aligned rectangle given by its min and max corners.
// A rect whose max is not strictly greater than its min on both axes is
// empty, and empty rects never count as coverage.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// MakeXYWH creates a rect from an origin and an extent.
func MakeXYWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// MakeLTRB creates a rect from its edges.
func MakeLTRB(l, t, r, b float64) Rect {
	return Rect{MinX: l, MinY: t, MaxX: r, MaxY: b}
}

// MakeSize creates a rect at the origin with the given integer size.
func MakeSize(s ISize) Rect {
	return Rect{MaxX: float64(s.Width), MaxY: float64(s.Height)}
}

// MakeOriginSize creates a rect at origin with the given integer size.
func MakeOriginSize(origin Point, s ISize) Rect {
	return MakeXYWH(origin.X, origin.Y, float64(s.Width), float64(s.Height))
}

// MakeMaximum returns the rect that contains every other rect.
func MakeMaximum() Rect {
	inf := math.Inf(1)
	return Rect{MinX: -inf, MinY: -inf, MaxX: inf, MaxY: inf}
}

// MakePointBounds returns the bounds of pts, or false when pts is empty.
func MakePointBounds(pts []Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r, true
}

// Origin returns the min corner.
func (r Rect) Origin() Point { return Point{X: r.MinX, Y: r.MinY} }

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Size returns the extent of r.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// IsEmpty reports whether r has no area. NaN edges are empty.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX > r.MinX && r.MaxY > r.MinY)
}

// IsMaximum reports whether r is the maximum rect.
func (r Rect) IsMaximum() bool {
	return r == MakeMaximum()
}

// Points returns the four corners in clockwise order starting at the min
// corner.
func (r Rect) Points() [4]Point {
	return [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// Intersection returns the overlap of r and o, or false when they do not
// overlap with a positive area.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	out := Rect{
		MinX: math.Max(r.MinX, o.MinX),
		MinY: math.Max(r.MinY, o.MinY),
		MaxX: math.Min(r.MaxX, o.MaxX),
		MaxY: math.Min(r.MaxY, o.MaxY),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// IntersectsWithRect reports whether r and o overlap with a positive area.
func (r Rect) IntersectsWithRect(o Rect) bool {
	_, ok := r.Intersection(o)
	return ok
}

// Union returns the smallest rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Contains reports whether o lies entirely inside r. An empty o is
// contained in any rect.
func (r Rect) Contains(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

// ContainsPoint reports whether p lies inside r. The max edges are
// exclusive.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX && p.Y >= r.MinY && p.X < r.MaxX && p.Y < r.MaxY
}

// Shift translates r by d.
func (r Rect) Shift(d Point) Rect {
	return Rect{MinX: r.MinX + d.X, MinY: r.MinY + d.Y, MaxX: r.MaxX + d.X, MaxY: r.MaxY + d.Y}
}

// Expand grows r by dx on the left and right and dy on the top and bottom.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Scale multiplies every edge by s.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{MinX: r.MinX * sx, MinY: r.MinY * sy, MaxX: r.MaxX * sx, MaxY: r.MaxY * sy}
}

// RoundOut returns the smallest integer-aligned rect containing r.
func (r Rect) RoundOut() Rect {
	return Rect{
		MinX: math.Floor(r.MinX),
		MinY: math.Floor(r.MinY),
		MaxX: math.Ceil(r.MaxX),
		MaxY: math.Ceil(r.MaxY),
	}
}

// ISize returns the integer extent of r, truncated toward zero.
func (r Rect) ISize() ISize {
	return ISize{Width: int(r.Width()), Height: int(r.Height())}
}

// TransformBounds returns the bounds of r after applying m to its corners.
// The maximum rect is returned unchanged.
func (r Rect) TransformBounds(m Matrix) Rect {
	if r.IsMaximum() {
		return r
	}
	pts := r.Points()
	for i := range pts {
		pts[i] = m.TransformPoint(pts[i])
	}
	out, _ := MakePointBounds(pts[:])
	return out
}

// Cutout returns the bounds of r with o removed, when the remainder is
// still a rectangle. It returns false when o covers r completely. If the
// difference is not a rectangle, r is returned unchanged.
func (r Rect) Cutout(o Rect) (Rect, bool) {
	if o.MinX <= r.MinX && o.MaxX >= r.MaxX {
		if o.MinY <= r.MinY && o.MaxY >= r.MaxY {
			return Rect{}, false
		}
		if o.MinY <= r.MinY && o.MaxY > r.MinY {
			return Rect{MinX: r.MinX, MinY: o.MaxY, MaxX: r.MaxX, MaxY: r.MaxY}, true
		}
		if o.MaxY >= r.MaxY && o.MinY < r.MaxY {
			return Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: o.MinY}, true
		}
	}
	if o.MinY <= r.MinY && o.MaxY >= r.MaxY {
		if o.MinX <= r.MinX && o.MaxX > r.MinX {
			return Rect{MinX: o.MaxX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}, true
		}
		if o.MaxX >= r.MaxX && o.MinX < r.MaxX {
			return Rect{MinX: r.MinX, MinY: r.MinY, MaxX: o.MinX, MaxY: r.MaxY}, true
		}
	}
	return r, true
}

// RectPtr returns a pointer to a copy of r, for optional rect parameters.
func RectPtr(r Rect) *Rect {
	return &r
}

// OptionalRect returns a pointer to r when ok is true and nil otherwise.
func OptionalRect(r Rect, ok bool) *Rect {
	if !ok {
		return nil
	}
	return &r
}

// UnionOptional unions an optional accumulator with r.
func UnionOptional(acc *Rect, r Rect) *Rect {
	if acc == nil {
		return RectPtr(r)
	}
	u := acc.Union(r)
	return &u
}

// IntersectOptional intersects r with an optional limit. A nil limit leaves
// r unchanged.
func IntersectOptional(r Rect, limit *Rect) (Rect, bool) {
	if limit == nil {
		return r, !r.IsEmpty()
	}
	return r.Intersection(*limit)
}
