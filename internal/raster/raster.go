// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster scan-converts triangles at pixel centres.
//
// Coverage is binary: a pixel is inside a triangle when its centre
// (x+0.5, y+0.5) is. Pixel centres that fall exactly on an edge are
// assigned with a top-left rule, so two triangles that share an edge never
// both touch the same pixel and a triangulated polygon is filled exactly
// once.
package raster

import (
	"math"

	"github.com/gogpu/compositor/geom"
)

// Fragment is one covered pixel. Bary holds the barycentric weights of the
// pixel centre relative to the triangle's vertices, in vertex order.
type Fragment struct {
	X, Y int
	Bary [3]float64
}

// Target receives fragments. Width and Height bound the scan.
type Target interface {
	Width() int
	Height() int
	Shade(f Fragment)
}

// Rasterizer scan-converts triangles into a Target, optionally restricted
// to a scissor rect.
type Rasterizer struct {
	target  Target
	scissor bounds
}

type bounds struct {
	x0, y0, x1, y1 int
}

// NewRasterizer creates a rasterizer covering the whole target.
func NewRasterizer(t Target) *Rasterizer {
	return &Rasterizer{
		target:  t,
		scissor: bounds{0, 0, t.Width(), t.Height()},
	}
}

// SetScissor restricts rasterization to r, clamped to the target bounds.
func (r *Rasterizer) SetScissor(rect geom.Rect) {
	r.scissor = bounds{
		x0: max(0, int(math.Floor(rect.MinX))),
		y0: max(0, int(math.Floor(rect.MinY))),
		x1: min(r.target.Width(), int(math.Ceil(rect.MaxX))),
		y1: min(r.target.Height(), int(math.Ceil(rect.MaxY))),
	}
}

// Triangle rasterizes the triangle a, b, c. Degenerate triangles produce no
// fragments. It returns the number of fragments emitted.
func (r *Rasterizer) Triangle(a, b, c geom.Point) int {
	area := b.Sub(a).Cross(c.Sub(a))
	if area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return 0
	}
	swapped := false
	if area < 0 {
		b, c = c, b
		area = -area
		swapped = true
	}

	x0 := max(r.scissor.x0, int(math.Floor(min3(a.X, b.X, c.X))))
	y0 := max(r.scissor.y0, int(math.Floor(min3(a.Y, b.Y, c.Y))))
	x1 := min(r.scissor.x1, int(math.Ceil(max3(a.X, b.X, c.X))))
	y1 := min(r.scissor.y1, int(math.Ceil(max3(a.Y, b.Y, c.Y))))

	e0 := newEdge(b, c)
	e1 := newEdge(c, a)
	e2 := newEdge(a, b)

	n := 0
	for y := y0; y < y1; y++ {
		py := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			p := geom.Point{X: float64(x) + 0.5, Y: py}
			w0, ok0 := e0.eval(p)
			if !ok0 {
				continue
			}
			w1, ok1 := e1.eval(p)
			if !ok1 {
				continue
			}
			w2, ok2 := e2.eval(p)
			if !ok2 {
				continue
			}
			bary := [3]float64{w0 / area, w1 / area, w2 / area}
			if swapped {
				bary[1], bary[2] = bary[2], bary[1]
			}
			r.target.Shade(Fragment{X: x, Y: y, Bary: bary})
			n++
		}
	}
	return n
}

// Triangles rasterizes a triangle list. Trailing vertices that do not form
// a full triangle are ignored.
func (r *Rasterizer) Triangles(pts []geom.Point) int {
	n := 0
	for i := 0; i+2 < len(pts); i += 3 {
		n += r.Triangle(pts[i], pts[i+1], pts[i+2])
	}
	return n
}

// edge is the directed edge from a to b of a positively oriented triangle.
type edge struct {
	a       geom.Point
	d       geom.Point
	topLeft bool
}

func newEdge(a, b geom.Point) edge {
	d := b.Sub(a)
	return edge{
		a:       a,
		d:       d,
		topLeft: d.Y > 0 || (d.Y == 0 && d.X < 0),
	}
}

// eval returns the edge function at p and whether p is on the inside.
func (e edge) eval(p geom.Point) (float64, bool) {
	w := e.d.Cross(p.Sub(e.a))
	if w > 0 {
		return w, true
	}
	if w == 0 && e.topLeft {
		return 0, true
	}
	return w, false
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
