package geometry

import (
	"math"
	"sort"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// FillPath fills an arbitrary path with its fill rule.
type FillPath struct {
	Path *geom.Path
	// InnerRect, when set, is a rect known to lie inside the filled area.
	InnerRect *geom.Rect
}

// PositionBuffer implements Geometry.
func (g FillPath) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	res := Result{Transform: resultTransform(e, pass)}
	if g.Path == nil {
		return res
	}
	contours := g.Path.Contours(localTolerance(e.Transform))
	if g.Path.IsConvex() && len(contours) == 1 {
		res.Vertices = fanVertices(contours)
		return res
	}
	res.Vertices = gpu.VertexBuffer{
		Positions: Tessellate(contours, g.Path.FillType()),
		Primitive: gpu.PrimitiveTriangle,
	}
	return res
}

// Coverage implements Geometry.
func (g FillPath) Coverage(m geom.Matrix) (geom.Rect, bool) {
	if g.Path == nil {
		return geom.Rect{}, false
	}
	b, ok := g.Path.Bounds()
	if !ok {
		return geom.Rect{}, false
	}
	return b.TransformBounds(m), true
}

// CoversArea implements Geometry. Only the inner rect hint is consulted.
func (g FillPath) CoversArea(m geom.Matrix, rect geom.Rect) bool {
	if g.InnerRect == nil || !m.IsTranslationScaleOnly() {
		return false
	}
	return g.InnerRect.TransformBounds(m).Contains(rect)
}

// IsAxisAlignedRect implements Geometry.
func (FillPath) IsAxisAlignedRect() bool { return false }

type edge struct {
	x0, y0, x1, y1 float64
	winding        int
}

func (e edge) xAt(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	return e.x0 + (e.x1-e.x0)*(y-e.y0)/(e.y1-e.y0)
}

// Tessellate triangulates closed contours under a fill rule. The plane is
// cut into horizontal slabs at every vertex and edge crossing; inside each
// slab the spans with a filled winding become trapezoids, so the triangles
// never overlap.
func Tessellate(contours [][]geom.Point, fill geom.FillType) []geom.Point {
	var edges []edge
	var ys []float64
	for _, c := range contours {
		n := len(c)
		if n < 3 {
			continue
		}
		for i := range c {
			a, b := c[i], c[(i+1)%n]
			ys = append(ys, a.Y)
			if a.Y == b.Y {
				continue
			}
			w := 1
			if a.Y > b.Y {
				a, b = b, a
				w = -1
			}
			edges = append(edges, edge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, winding: w})
		}
	}
	if len(edges) < 2 {
		return nil
	}

	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if y, ok := crossing(edges[i], edges[j]); ok {
				ys = append(ys, y)
			}
		}
	}
	sort.Float64s(ys)
	ys = dedupe(ys)

	inside := func(w int) bool {
		if fill == geom.FillOdd {
			return w%2 != 0
		}
		return w != 0
	}

	type span struct {
		top, bottom, mid float64
		winding          int
	}
	var (
		out    []geom.Point
		active []span
	)
	for s := 0; s+1 < len(ys); s++ {
		ya, yb := ys[s], ys[s+1]
		ym := (ya + yb) / 2
		active = active[:0]
		for _, e := range edges {
			if e.y0 <= ym && e.y1 >= ym {
				active = append(active, span{top: e.xAt(ya), bottom: e.xAt(yb), mid: e.xAt(ym), winding: e.winding})
			}
		}
		sort.Slice(active, func(i, j int) bool { return active[i].mid < active[j].mid })

		w := 0
		start := -1
		for i, sp := range active {
			was := inside(w)
			w += sp.winding
			now := inside(w)
			switch {
			case !was && now:
				start = i
			case was && !now && start >= 0:
				l, r := active[start], sp
				out = append(out,
					geom.Pt(l.top, ya), geom.Pt(r.top, ya), geom.Pt(r.bottom, yb),
					geom.Pt(l.top, ya), geom.Pt(r.bottom, yb), geom.Pt(l.bottom, yb),
				)
				start = -1
			}
		}
	}
	return out
}

// crossing returns the y at which a and b cross strictly inside their
// common y range.
func crossing(a, b edge) (float64, bool) {
	top := math.Max(a.y0, b.y0)
	bottom := math.Min(a.y1, b.y1)
	if bottom <= top {
		return 0, false
	}
	d0 := a.xAt(top) - b.xAt(top)
	d1 := a.xAt(bottom) - b.xAt(bottom)
	if d0*d1 >= 0 {
		return 0, false
	}
	return top + (bottom-top)*d0/(d0-d1), true
}

const slabEpsilon = 1e-9

func dedupe(ys []float64) []float64 {
	out := ys[:0]
	for i, y := range ys {
		if i > 0 && y-out[len(out)-1] < slabEpsilon {
			continue
		}
		out = append(out, y)
	}
	return out
}
