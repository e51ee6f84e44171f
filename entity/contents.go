package entity

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/text"
)

// Contents is what an entity draws.
type Contents interface {
	// Render encodes the draws for e into pass.
	Render(r *ContentContext, e *Entity, pass gpu.RenderPass) error

	// Coverage returns the area e affects in pass coordinates, or false
	// when it affects nothing.
	Coverage(e *Entity) (geom.Rect, bool)

	// ApplyColorFilter folds proc into the colors of the contents. It
	// returns false when the contents cannot absorb a color filter, in
	// which case they are left unchanged.
	ApplyColorFilter(proc ColorFilterProc) bool

	// IsOpaque reports whether every pixel the contents cover is opaque.
	IsOpaque() bool
}

// ColorFilterProc maps a straight alpha color to a filtered one.
type ColorFilterProc func(geom.Color) geom.Color

// ClipCoverageType says how an entity changes the clip stack.
type ClipCoverageType uint8

const (
	ClipNoChange ClipCoverageType = iota
	ClipAppend
	ClipRestore
)

// String returns the type name.
func (t ClipCoverageType) String() string {
	switch t {
	case ClipNoChange:
		return "NoChange"
	case ClipAppend:
		return "Append"
	case ClipRestore:
		return "Restore"
	default:
		return "Unknown"
	}
}

// ClipCoverage is the clip an entity leaves behind. A nil Coverage means
// nothing remains visible.
type ClipCoverage struct {
	Type     ClipCoverageType
	Coverage *geom.Rect
}

// ClipCoverager is implemented by contents that change the clip.
type ClipCoverager interface {
	ClipCoverage(e *Entity, current *geom.Rect) ClipCoverage
}

// RenderPredicate is implemented by contents that decide themselves whether
// a draw under clip can be visible.
type RenderPredicate interface {
	ShouldRender(e *Entity, clip *geom.Rect) bool
}

// BackgroundColorer is implemented by contents that can be folded into the
// clear color of a target of the given size.
type BackgroundColorer interface {
	AsBackgroundColor(e *Entity, target geom.ISize) (geom.Color, bool)
}

// OpacityInheritor is implemented by contents that can take a group opacity
// by scaling their own alpha.
type OpacityInheritor interface {
	CanInheritOpacity(e *Entity) bool
	SetInheritedOpacity(opacity float64)
}

// CoverageHinter is implemented by contents that can limit their work to a
// hinted area.
type CoverageHinter interface {
	CoverageHint() *geom.Rect
	SetCoverageHint(hint *geom.Rect)
}

// GlyphAtlasPopulator is implemented by contents that draw glyphs.
type GlyphAtlasPopulator interface {
	PopulateGlyphAtlas(atlas *text.LazyGlyphAtlas, scale float64)
}

// ColorFilterProber is implemented by contents that can tell in advance
// whether ApplyColorFilter would succeed.
type ColorFilterProber interface {
	CanApplyColorFilter() bool
}

// ClipRestorer is implemented by clip restore markers.
type ClipRestorer interface {
	SetRestoreCoverage(coverage *geom.Rect)
}

// Base is embedded by contents. It stores the coverage hint and provides
// the default ApplyColorFilter and IsOpaque.
type Base struct {
	coverageHint *geom.Rect
}

// CoverageHint returns the hinted area, or nil.
func (b *Base) CoverageHint() *geom.Rect { return b.coverageHint }

// SetCoverageHint sets the hinted area. Nil clears it.
func (b *Base) SetCoverageHint(hint *geom.Rect) {
	if hint == nil {
		b.coverageHint = nil
		return
	}
	h := *hint
	b.coverageHint = &h
}

// ApplyColorFilter reports false.
func (b *Base) ApplyColorFilter(ColorFilterProc) bool { return false }

// IsOpaque reports false.
func (b *Base) IsOpaque() bool { return false }
