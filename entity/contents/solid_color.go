package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// SolidColor fills a geometry with one color.
type SolidColor struct {
	ColorSource
	color geom.Color
}

// NewSolidColor returns contents filling g with c.
func NewSolidColor(g geometry.Geometry, c geom.Color) *SolidColor {
	return &SolidColor{ColorSource: newColorSource(g), color: c}
}

// SetColor sets the fill color.
func (s *SolidColor) SetColor(c geom.Color) { s.color = c }

// Color returns the fill color with the opacity factor applied.
func (s *SolidColor) Color() geom.Color {
	return s.color.WithAlpha(s.color.A * s.OpacityFactor())
}

// IsOpaque implements entity.Contents.
func (s *SolidColor) IsOpaque() bool { return s.Color().IsOpaque() }

// Coverage implements entity.Contents. Transparent fills cover nothing.
func (s *SolidColor) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if s.Color().IsTransparent() {
		return geom.Rect{}, false
	}
	return s.ColorSource.Coverage(e)
}

// Render implements entity.Contents.
func (s *SolidColor) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	return drawGeometry(r, e, pass, s.geometry, "Solid Fill", gpu.PipelineSolidFill,
		gpu.FragmentInfo{Color: s.Color().Premultiply()})
}

// AsBackgroundColor returns the fill color when the geometry is a cover or
// a plain rect covering the whole target.
func (s *SolidColor) AsBackgroundColor(e *entity.Entity, target geom.ISize) (geom.Color, bool) {
	if s.geometry == nil {
		return geom.Color{}, false
	}
	if _, cover := s.geometry.(geometry.Cover); !cover && !s.geometry.IsAxisAlignedRect() {
		return geom.Color{}, false
	}
	if !s.geometry.CoversArea(e.Transform, geom.MakeSize(target)) {
		return geom.Color{}, false
	}
	return s.Color(), true
}

// ApplyColorFilter implements entity.Contents.
func (s *SolidColor) ApplyColorFilter(proc entity.ColorFilterProc) bool {
	s.color = proc(s.color)
	return true
}

// CanApplyColorFilter reports true.
func (s *SolidColor) CanApplyColorFilter() bool { return true }
