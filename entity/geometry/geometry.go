// Package geometry turns shapes into vertex buffers for contents to shade.
//
// Vertices are produced in the local space of the drawing entity. The
// Result transform maps them into pass pixels.
package geometry

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Result is a tessellated shape.
type Result struct {
	Vertices  gpu.VertexBuffer
	Transform geom.Matrix
	// PreventOverdraw is set for geometry whose triangles overlap. Solid
	// fills of such geometry mark the stencil so each pixel blends once.
	PreventOverdraw bool
}

// Geometry is a shape that can be tessellated.
type Geometry interface {
	// PositionBuffer tessellates the shape for drawing e into pass.
	PositionBuffer(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result
	// Coverage returns the bounds of the shape under m.
	Coverage(m geom.Matrix) (geom.Rect, bool)
	// CoversArea reports whether the shape under m covers all of rect. It
	// may return false for shapes that do.
	CoversArea(m geom.Matrix, rect geom.Rect) bool
	// IsAxisAlignedRect reports whether the shape is a plain rectangle.
	IsAxisAlignedRect() bool
}

// flatTolerance is the flattening tolerance in device pixels.
const flatTolerance = 0.25

// localTolerance converts a device tolerance into the local space of m.
func localTolerance(m geom.Matrix) float64 {
	s := m.MaxBasisLengthXY()
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return flatTolerance
	}
	return flatTolerance / s
}

func resultTransform(e *entity.Entity, pass gpu.RenderPass) geom.Matrix {
	return gpu.OrthographicTransform(pass.RenderTargetSize()).Multiply(e.Transform)
}

// Cover fills the whole pass.
type Cover struct{}

// PositionBuffer implements Geometry.
func (Cover) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	res := Result{Transform: resultTransform(e, pass)}
	if e.Transform.Determinant() == 0 {
		return res
	}
	inv := e.Transform.Invert()
	pts := geom.MakeSize(pass.RenderTargetSize()).Points()
	for i := range pts {
		pts[i] = inv.TransformPoint(pts[i])
	}
	res.Vertices = gpu.VertexBuffer{
		Positions: []geom.Point{pts[0], pts[1], pts[3], pts[2]},
		Primitive: gpu.PrimitiveTriangleStrip,
	}
	return res
}

// Coverage implements Geometry.
func (Cover) Coverage(geom.Matrix) (geom.Rect, bool) { return geom.MakeMaximum(), true }

// CoversArea implements Geometry.
func (Cover) CoversArea(geom.Matrix, geom.Rect) bool { return true }

// IsAxisAlignedRect implements Geometry.
func (Cover) IsAxisAlignedRect() bool { return false }

// Rect is an axis-aligned rectangle.
type Rect struct {
	Rect geom.Rect
}

// PositionBuffer implements Geometry.
func (g Rect) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	return Result{Vertices: gpu.QuadStrip(g.Rect), Transform: resultTransform(e, pass)}
}

// Coverage implements Geometry.
func (g Rect) Coverage(m geom.Matrix) (geom.Rect, bool) {
	if g.Rect.IsEmpty() {
		return geom.Rect{}, false
	}
	return g.Rect.TransformBounds(m), true
}

// CoversArea implements Geometry.
func (g Rect) CoversArea(m geom.Matrix, rect geom.Rect) bool {
	if !m.IsTranslationScaleOnly() {
		return false
	}
	return g.Rect.TransformBounds(m).Contains(rect)
}

// IsAxisAlignedRect implements Geometry.
func (Rect) IsAxisAlignedRect() bool { return true }

// RoundRect is a rectangle with elliptical corners of the given radii.
type RoundRect struct {
	Rect  geom.Rect
	Radii geom.Size
}

// PositionBuffer implements Geometry.
func (g RoundRect) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	contours := geom.RoundRect{Rect: g.Rect, Radii: g.Radii}.Path().Contours(localTolerance(e.Transform))
	return Result{Vertices: fanVertices(contours), Transform: resultTransform(e, pass)}
}

// Coverage implements Geometry.
func (g RoundRect) Coverage(m geom.Matrix) (geom.Rect, bool) {
	return Rect{Rect: g.Rect}.Coverage(m)
}

// CoversArea reports true when rect fits inside the straight part of the
// shape: the full-height band between the horizontal radii or the
// full-width band between the vertical radii.
func (g RoundRect) CoversArea(m geom.Matrix, rect geom.Rect) bool {
	if !m.IsTranslationScaleOnly() {
		return false
	}
	flatTB := g.Rect.Width() > g.Radii.Width*2
	flatLR := g.Rect.Height() > g.Radii.Height*2
	if flatTB && g.Rect.Expand(-g.Radii.Width, 0).TransformBounds(m).Contains(rect) {
		return true
	}
	if flatLR && g.Rect.Expand(0, -g.Radii.Height).TransformBounds(m).Contains(rect) {
		return true
	}
	return false
}

// IsAxisAlignedRect implements Geometry.
func (RoundRect) IsAxisAlignedRect() bool { return false }

// Ellipse fills the ellipse inscribed in Rect.
type Ellipse struct {
	Rect geom.Rect
}

// PositionBuffer implements Geometry.
func (g Ellipse) PositionBuffer(_ *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) Result {
	contours := geom.NewPath().Ellipse(g.Rect).Contours(localTolerance(e.Transform))
	return Result{Vertices: fanVertices(contours), Transform: resultTransform(e, pass)}
}

// Coverage implements Geometry.
func (g Ellipse) Coverage(m geom.Matrix) (geom.Rect, bool) {
	return Rect{Rect: g.Rect}.Coverage(m)
}

// CoversArea implements Geometry.
func (Ellipse) CoversArea(geom.Matrix, geom.Rect) bool { return false }

// IsAxisAlignedRect implements Geometry.
func (Ellipse) IsAxisAlignedRect() bool { return false }

// fanVertices triangulates convex contours as fans.
func fanVertices(contours [][]geom.Point) gpu.VertexBuffer {
	var pts []geom.Point
	for _, c := range contours {
		for i := 1; i+1 < len(c); i++ {
			pts = append(pts, c[0], c[i], c[i+1])
		}
	}
	return gpu.VertexBuffer{Positions: pts, Primitive: gpu.PrimitiveTriangle}
}
