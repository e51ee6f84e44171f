package text

import (
	"testing"

	"github.com/gogpu/compositor/backend/software"
	"github.com/gogpu/compositor/geom"
)

func TestDefaultFace(t *testing.T) {
	f := DefaultFace()
	if f == nil {
		t.Fatal("DefaultFace() = nil")
	}
	if f != DefaultFace() {
		t.Error("DefaultFace() returned a different face on the second call")
	}
	m := f.Metrics(16)
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("Metrics(16) = %+v, want positive ascent and descent", m)
	}
}

func TestParseFaceInvalid(t *testing.T) {
	if _, err := ParseFace([]byte("not a font")); err == nil {
		t.Error("ParseFace() error = nil, want error")
	}
}

func TestShape(t *testing.T) {
	f := Shape("Hello", DefaultFace(), 24)
	if got := f.GlyphCount(); got != 5 {
		t.Fatalf("GlyphCount() = %d, want 5", got)
	}
	if f.Size() != 24 {
		t.Errorf("Size() = %v, want 24", f.Size())
	}
	if f.Advance() <= 0 {
		t.Errorf("Advance() = %v, want > 0", f.Advance())
	}

	prev := -1.0
	for _, g := range f.Runs()[0].Glyphs {
		if g.Position.X <= prev {
			t.Errorf("glyph x %v not after %v", g.Position.X, prev)
		}
		prev = g.Position.X
	}

	b, ok := f.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	// Cap height sits above the baseline.
	if b.MinY >= 0 || b.MaxX > f.Advance()+1 {
		t.Errorf("Bounds() = %+v, advance %v", b, f.Advance())
	}
}

func TestShapeEmpty(t *testing.T) {
	tests := []struct {
		name string
		s    string
		size float64
	}{
		{"empty", "", 12},
		{"zero size", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Shape(tt.s, nil, tt.size)
			if f.GlyphCount() != 0 {
				t.Errorf("GlyphCount() = %d, want 0", f.GlyphCount())
			}
			if _, ok := f.Bounds(); ok {
				t.Error("Bounds() ok = true, want false")
			}
		})
	}
}

func TestBidiSpansLTR(t *testing.T) {
	spans := bidiSpans("plain text", 10)
	if len(spans) != 1 || spans[0].start != 0 || spans[0].end != 10 || spans[0].rtl {
		t.Errorf("bidiSpans() = %+v, want one LTR span [0, 10)", spans)
	}
}

func TestFrameOverlap(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []Glyph
		want   bool
	}{
		{"apart", []Glyph{
			{Position: geom.Pt(0, 0), Bounds: geom.MakeXYWH(0, -10, 5, 10)},
			{Position: geom.Pt(6, 0), Bounds: geom.MakeXYWH(0, -10, 5, 10)},
		}, false},
		{"overlap", []Glyph{
			{Position: geom.Pt(0, 0), Bounds: geom.MakeXYWH(0, -10, 5, 10)},
			{Position: geom.Pt(3, 0), Bounds: geom.MakeXYWH(0, -10, 5, 10)},
		}, true},
		{"single", []Glyph{
			{Position: geom.Pt(0, 0), Bounds: geom.MakeXYWH(0, -10, 5, 10)},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(DefaultFace(), 10, []Run{{Glyphs: tt.glyphs}})
			if got := f.MaybeHasOverlapping(); got != tt.want {
				t.Errorf("MaybeHasOverlapping() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLazyGlyphAtlas(t *testing.T) {
	ctx := software.NewContext()
	face := DefaultFace()
	frame := Shape("Hello", face, 20)

	l := NewLazyGlyphAtlas()
	l.AddTextFrame(frame, 1)
	l.AddTextFrame(frame, 2)
	a, err := l.Atlas(ctx)
	if err != nil {
		t.Fatalf("Atlas() error = %v", err)
	}
	// H, e, l, o at two sizes.
	if got := a.GlyphCount(); got != 8 {
		t.Errorf("GlyphCount() = %d, want 8", got)
	}
	if a.Texture() == nil {
		t.Fatal("Texture() = nil")
	}
	if again, _ := l.Atlas(ctx); again != a {
		t.Error("Atlas() rebuilt without ResetTextFrames")
	}

	g := frame.Runs()[0].Glyphs[0]
	slot, ok := a.Lookup(face, g.ID, 40)
	if !ok {
		t.Fatal("Lookup() ok = false")
	}
	if slot.UV.IsEmpty() || slot.UV.MaxX > 1 || slot.UV.MaxY > 1 {
		t.Errorf("slot UV = %+v, want a non-empty rect inside [0,1]", slot.UV)
	}
	if slot.Bounds.Width() < g.Bounds.Width()*2-2 {
		t.Errorf("slot Bounds = %+v, too small for glyph %+v at 2x", slot.Bounds, g.Bounds)
	}

	// The atlas holds coverage somewhere inside the glyph slot.
	tex := a.Texture().(*software.Texture)
	sz := a.Size()
	x0, y0 := int(slot.UV.MinX*float64(sz.Width)), int(slot.UV.MinY*float64(sz.Height))
	inked := false
	for y := y0; y < y0+int(slot.Bounds.Height()) && !inked; y++ {
		for x := x0; x < x0+int(slot.Bounds.Width()); x++ {
			if tex.Pixel(x, y).A > 0.5 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("glyph slot holds no coverage")
	}

	l.ResetTextFrames()
	empty, err := l.Atlas(ctx)
	if err != nil {
		t.Fatalf("Atlas() after reset error = %v", err)
	}
	if empty.GlyphCount() != 0 || empty.Texture() != nil {
		t.Errorf("empty atlas = %d glyphs, texture %v", empty.GlyphCount(), empty.Texture())
	}
}
