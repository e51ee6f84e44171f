package geometry

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Cap is the shape at the open ends of a stroke.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape where two stroke segments meet.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// StrokePath strokes an arbitrary path. Width zero draws a hairline one
// device pixel wide.
type StrokePath struct {
	Path       *geom.Path
	Width      float64
	MiterLimit float64
	Cap        Cap
	Join       Join
}

// PositionBuffer implements Geometry.
func (g StrokePath) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	res := Result{Transform: resultTransform(e, pass), PreventOverdraw: true}
	scale := e.Transform.MaxBasisLengthXY()
	if g.Path == nil || g.Width < 0 || scale <= 0 {
		return res
	}
	s := stroker{
		half:       math.Max(g.Width, 1/scale) / 2,
		miterLimit: g.miterLimit(),
		cap:        g.Cap,
		join:       g.Join,
		tolerance:  flatTolerance / scale,
	}
	for _, l := range g.Path.Polylines(s.tolerance) {
		s.polyline(l)
	}
	res.Vertices = gpu.VertexBuffer{Positions: s.out, Primitive: gpu.PrimitiveTriangle}
	return res
}

func (g StrokePath) miterLimit() float64 {
	if g.MiterLimit < 1 {
		return 4
	}
	return g.MiterLimit
}

// Coverage implements Geometry. The path bounds grow by the largest
// distance a join or cap can reach.
func (g StrokePath) Coverage(m geom.Matrix) (geom.Rect, bool) {
	if g.Path == nil || g.Width < 0 {
		return geom.Rect{}, false
	}
	b, ok := g.Path.Bounds()
	if !ok {
		return geom.Rect{}, false
	}
	scale := m.MaxBasisLengthXY()
	if scale <= 0 {
		return geom.Rect{}, false
	}
	reach := 0.5
	if g.Cap == CapSquare {
		reach *= math.Sqrt2
	}
	if g.Join == JoinMiter {
		reach = math.Max(reach, g.miterLimit()*0.5)
	}
	reach *= math.Max(g.Width, 1/scale)
	return b.Expand(reach, reach).TransformBounds(m), true
}

// CoversArea implements Geometry.
func (StrokePath) CoversArea(geom.Matrix, geom.Rect) bool { return false }

// IsAxisAlignedRect implements Geometry.
func (StrokePath) IsAxisAlignedRect() bool { return false }

// stroker emits a triangle list covering a stroke. Triangles of adjacent
// segments, joins and caps overlap.
type stroker struct {
	half       float64
	miterLimit float64
	cap        Cap
	join       Join
	tolerance  float64
	out        []geom.Point
}

func (s *stroker) tri(a, b, c geom.Point) {
	s.out = append(s.out, a, b, c)
}

func (s *stroker) quad(a, b, c, d geom.Point) {
	s.tri(a, b, c)
	s.tri(a, c, d)
}

func normal(d geom.Point) geom.Point { return geom.Pt(-d.Y, d.X) }

func (s *stroker) polyline(l geom.Polyline) {
	pts := make([]geom.Point, 0, len(l.Points))
	for _, p := range l.Points {
		if len(pts) == 0 || p.Sub(pts[len(pts)-1]).Length() > 1e-9 {
			pts = append(pts, p)
		}
	}
	closed := l.Closed
	if closed && len(pts) > 1 && pts[0].Sub(pts[len(pts)-1]).Length() <= 1e-9 {
		pts = pts[:len(pts)-1]
	}
	if len(pts) == 1 {
		s.dot(pts[0])
		return
	}
	if len(pts) == 2 {
		closed = false
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	dirs := make([]geom.Point, segs)
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		dirs[i] = b.Sub(a).Normalize()
		off := normal(dirs[i]).Mul(s.half)
		s.quad(a.Add(off), b.Add(off), b.Sub(off), a.Sub(off))
	}
	for i := 1; i < segs; i++ {
		s.joinAt(pts[i], dirs[i-1], dirs[i])
	}
	if closed {
		s.joinAt(pts[0], dirs[segs-1], dirs[0])
		return
	}
	s.capAt(pts[0], dirs[0].Neg())
	s.capAt(pts[n-1], dirs[segs-1])
}

// dot strokes a zero-length contour. Only round and square caps are
// visible.
func (s *stroker) dot(p geom.Point) {
	switch s.cap {
	case CapRound:
		s.arc(p, geom.Pt(s.half, 0), 2*math.Pi)
	case CapSquare:
		r := geom.MakeLTRB(p.X-s.half, p.Y-s.half, p.X+s.half, p.Y+s.half).Points()
		s.quad(r[0], r[1], r[2], r[3])
	}
}

func (s *stroker) joinAt(p, d0, d1 geom.Point) {
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-9 {
		if dot > 0 {
			return
		}
		if s.join == JoinRound {
			s.arc(p, normal(d0).Mul(s.half), math.Pi)
			s.arc(p, normal(d0).Mul(-s.half), math.Pi)
		}
		return
	}
	side := -1.0
	if cross < 0 {
		side = 1
	}
	o0 := normal(d0).Mul(s.half * side)
	o1 := normal(d1).Mul(s.half * side)

	switch s.join {
	case JoinRound:
		sweep := math.Acos(math.Max(-1, math.Min(1, dot)))
		if cross < 0 {
			sweep = -sweep
		}
		s.arc(p, o0, sweep)
	case JoinMiter:
		m := o0.Add(o1).Normalize()
		cos := m.Dot(o0.Mul(1 / s.half))
		if cos > 0 && 1/cos <= s.miterLimit {
			tip := p.Add(m.Mul(s.half / cos))
			s.tri(p, p.Add(o0), tip)
			s.tri(p, tip, p.Add(o1))
			return
		}
		s.tri(p, p.Add(o0), p.Add(o1))
	default:
		s.tri(p, p.Add(o0), p.Add(o1))
	}
}

// capAt caps the end at p of a stroke heading in direction d.
func (s *stroker) capAt(p, d geom.Point) {
	off := normal(d).Mul(s.half)
	switch s.cap {
	case CapSquare:
		ext := d.Mul(s.half)
		s.quad(p.Add(off), p.Add(off).Add(ext), p.Sub(off).Add(ext), p.Sub(off))
	case CapRound:
		s.arc(p, off, -math.Pi)
	}
}

// arc emits a fan around c starting at offset from and sweeping by sweep
// radians.
func (s *stroker) arc(c, from geom.Point, sweep float64) {
	steps := arcSteps(s.half, math.Abs(sweep), s.tolerance)
	step := sweep / float64(steps)
	prev := c.Add(from)
	for i := 1; i <= steps; i++ {
		a := step * float64(i)
		sin, cos := math.Sincos(a)
		next := c.Add(geom.Pt(from.X*cos-from.Y*sin, from.X*sin+from.Y*cos))
		s.tri(c, prev, next)
		prev = next
	}
}

// arcSteps returns the number of chords approximating an arc of radius r
// and the given sweep within tolerance.
func arcSteps(r, sweep, tolerance float64) int {
	if r <= tolerance {
		return max(1, int(math.Ceil(sweep/(math.Pi/2))))
	}
	step := 2 * math.Acos(1-tolerance/r)
	return max(1, min(1024, int(math.Ceil(sweep/step))))
}
