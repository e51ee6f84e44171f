package text

import "github.com/gogpu/compositor/geom"

// GlyphID is a glyph index in a font.
type GlyphID uint16

// Glyph is a shaped glyph. Position is the glyph origin relative to the
// frame origin on the baseline, y down. Bounds are the ink bounds relative
// to Position; glyphs without ink have empty Bounds.
type Glyph struct {
	ID       GlyphID
	Position geom.Point
	Advance  float64
	Bounds   geom.Rect
}

// Run is a sequence of glyphs with one direction.
type Run struct {
	Glyphs []Glyph
	RTL    bool
}

// Frame is shaped, positioned text at one size.
type Frame struct {
	face    *Face
	size    float64
	runs    []Run
	advance float64
}

// NewFrame creates a frame from runs that are already positioned.
func NewFrame(face *Face, size float64, runs []Run) *Frame {
	f := &Frame{face: face, size: size, runs: runs}
	for _, r := range runs {
		for _, g := range r.Glyphs {
			f.advance = max(f.advance, g.Position.X+g.Advance)
		}
	}
	return f
}

// Face returns the frame's font.
func (f *Frame) Face() *Face { return f.face }

// Size returns the font size in pixels per em.
func (f *Frame) Size() float64 { return f.size }

// Runs returns the runs in visual order.
func (f *Frame) Runs() []Run { return f.runs }

// Advance returns the horizontal extent of the pen.
func (f *Frame) Advance() float64 { return f.advance }

// GlyphCount returns the number of glyphs across all runs.
func (f *Frame) GlyphCount() int {
	n := 0
	for _, r := range f.runs {
		n += len(r.Glyphs)
	}
	return n
}

// Bounds returns the union of the ink bounds of all glyphs, or false when
// no glyph has ink.
func (f *Frame) Bounds() (geom.Rect, bool) {
	var acc *geom.Rect
	for _, r := range f.runs {
		for _, g := range r.Glyphs {
			if g.Bounds.IsEmpty() {
				continue
			}
			acc = geom.UnionOptional(acc, g.Bounds.Shift(g.Position))
		}
	}
	if acc == nil {
		return geom.Rect{}, false
	}
	return *acc, true
}

// MaybeHasOverlapping reports whether two glyphs of the frame may cover the
// same pixel, so the frame cannot take a group opacity by drawing each
// glyph translucently.
func (f *Frame) MaybeHasOverlapping() bool {
	var prev *geom.Rect
	for _, r := range f.runs {
		for _, g := range r.Glyphs {
			if g.Bounds.IsEmpty() {
				continue
			}
			b := g.Bounds.Shift(g.Position)
			if prev != nil && prev.IntersectsWithRect(b) {
				return true
			}
			prev = &b
		}
	}
	return false
}
