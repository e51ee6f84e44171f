package geometry

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// PointField draws a square or a disc of Radius around each point.
// Overlapping points blend more than once.
type PointField struct {
	Points []geom.Point
	Radius float64
	Round  bool
}

// PositionBuffer implements Geometry. The radius is at least one device
// pixel.
func (g PointField) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	res := Result{Transform: resultTransform(e, pass)}
	radius, ok := g.radius(e.Transform)
	if !ok || len(g.Points) == 0 {
		return res
	}

	var pts []geom.Point
	if g.Round {
		disc := geom.NewPath().Circle(geom.Point{}, radius).Contours(localTolerance(e.Transform))
		fan := fanVertices(disc).Positions
		pts = make([]geom.Point, 0, len(fan)*len(g.Points))
		for _, c := range g.Points {
			for _, v := range fan {
				pts = append(pts, c.Add(v))
			}
		}
	} else {
		pts = make([]geom.Point, 0, 6*len(g.Points))
		for _, c := range g.Points {
			ul := geom.Pt(c.X-radius, c.Y-radius)
			ur := geom.Pt(c.X+radius, c.Y-radius)
			ll := geom.Pt(c.X-radius, c.Y+radius)
			lr := geom.Pt(c.X+radius, c.Y+radius)
			pts = append(pts, ul, ur, ll, ur, lr, ll)
		}
	}
	res.Vertices = gpu.VertexBuffer{Positions: pts, Primitive: gpu.PrimitiveTriangle}
	return res
}

// Coverage implements Geometry.
func (g PointField) Coverage(m geom.Matrix) (geom.Rect, bool) {
	b, ok := geom.MakePointBounds(g.Points)
	radius, rok := g.radius(m)
	if !ok || !rok || g.Radius <= 0 {
		return geom.Rect{}, false
	}
	return b.Expand(radius, radius).TransformBounds(m), true
}

// radius returns Radius raised to one device pixel under m.
func (g PointField) radius(m geom.Matrix) (float64, bool) {
	det := m.Determinant()
	if g.Radius < 0 || det == 0 {
		return 0, false
	}
	return math.Max(g.Radius, 1/math.Sqrt(math.Abs(det))), true
}

// CoversArea implements Geometry.
func (PointField) CoversArea(geom.Matrix, geom.Rect) bool { return false }

// IsAxisAlignedRect implements Geometry.
func (PointField) IsAxisAlignedRect() bool { return false }
