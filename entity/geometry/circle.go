package geometry

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Circle is a filled disc, or a ring when StrokeWidth is positive.
type Circle struct {
	Center      geom.Point
	Radius      float64
	StrokeWidth float64
}

func (g Circle) outer() float64 {
	if g.StrokeWidth > 0 {
		return g.Radius + g.StrokeWidth/2
	}
	return g.Radius
}

// PositionBuffer implements Geometry.
func (g Circle) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	res := Result{Transform: resultTransform(e, pass)}
	outer := g.outer()
	if outer <= 0 {
		return res
	}
	tol := localTolerance(e.Transform)
	steps := max(8, arcSteps(outer, 2*math.Pi, tol))
	at := func(r float64, i int) geom.Point {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(steps))
		return geom.Pt(g.Center.X+r*cos, g.Center.Y+r*sin)
	}

	if g.StrokeWidth <= 0 {
		pts := make([]geom.Point, 0, steps*3)
		for i := 0; i < steps; i++ {
			pts = append(pts, g.Center, at(outer, i), at(outer, i+1))
		}
		res.Vertices = gpu.VertexBuffer{Positions: pts, Primitive: gpu.PrimitiveTriangle}
		return res
	}

	inner := math.Max(0, g.Radius-g.StrokeWidth/2)
	pts := make([]geom.Point, 0, (steps+1)*2)
	for i := 0; i <= steps; i++ {
		pts = append(pts, at(outer, i), at(inner, i))
	}
	res.Vertices = gpu.VertexBuffer{Positions: pts, Primitive: gpu.PrimitiveTriangleStrip}
	return res
}

// Coverage implements Geometry.
func (g Circle) Coverage(m geom.Matrix) (geom.Rect, bool) {
	r := g.outer()
	if r <= 0 {
		return geom.Rect{}, false
	}
	return geom.MakeLTRB(g.Center.X-r, g.Center.Y-r, g.Center.X+r, g.Center.Y+r).TransformBounds(m), true
}

// CoversArea implements Geometry.
func (Circle) CoversArea(geom.Matrix, geom.Rect) bool { return false }

// IsAxisAlignedRect implements Geometry.
func (Circle) IsAxisAlignedRect() bool { return false }

// Line is a straight stroke with butt or square caps.
type Line struct {
	P0, P1 geom.Point
	Width  float64
	Cap    Cap
}

// corners returns the stroke outline, or false for a butt-capped line of
// zero length.
func (g Line) corners(m geom.Matrix) ([4]geom.Point, bool) {
	scale := m.MaxBasisLengthXY()
	if scale <= 0 {
		return [4]geom.Point{}, false
	}
	half := math.Max(g.Width, 1/scale) / 2
	d := g.P1.Sub(g.P0)
	if d.Length() == 0 {
		if g.Cap != CapSquare {
			return [4]geom.Point{}, false
		}
		d = geom.Pt(1, 0)
	}
	d = d.Normalize()
	n := normal(d).Mul(half)
	a, b := g.P0, g.P1
	if g.Cap == CapSquare {
		a = a.Sub(d.Mul(half))
		b = b.Add(d.Mul(half))
	}
	return [4]geom.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, true
}

// PositionBuffer implements Geometry.
func (g Line) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	res := Result{Transform: resultTransform(e, pass)}
	c, ok := g.corners(e.Transform)
	if !ok {
		return res
	}
	res.Vertices = gpu.VertexBuffer{
		Positions: []geom.Point{c[0], c[1], c[3], c[2]},
		Primitive: gpu.PrimitiveTriangleStrip,
	}
	return res
}

// Coverage implements Geometry.
func (g Line) Coverage(m geom.Matrix) (geom.Rect, bool) {
	c, ok := g.corners(m)
	if !ok {
		return geom.Rect{}, false
	}
	for i := range c {
		c[i] = m.TransformPoint(c[i])
	}
	return geom.MakePointBounds(c[:])
}

// CoversArea implements Geometry.
func (Line) CoversArea(geom.Matrix, geom.Rect) bool { return false }

// IsAxisAlignedRect implements Geometry.
func (Line) IsAxisAlignedRect() bool { return false }
