package text

import (
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/compositor/geom"
)

// HarfbuzzShaper keeps internal buffers and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// span is a bidi run as rune indices [start, end).
type span struct {
	start, end int
	rtl        bool
}

// Shape shapes s with face at size pixels per em. The frame origin is the
// start of the baseline; runs are laid out left to right in visual order.
func Shape(s string, face *Face, size float64) *Frame {
	if face == nil {
		face = DefaultFace()
	}
	runes := []rune(s)
	if len(runes) == 0 || size <= 0 {
		return NewFrame(face, size, nil)
	}

	gtFace := gtfont.NewFace(face.gt)
	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer shaperPool.Put(shaper)

	var (
		runs []Run
		pen  float64
	)
	for _, sp := range bidiSpans(s, len(runes)) {
		dir := di.DirectionLTR
		if sp.rtl {
			dir = di.DirectionRTL
		}
		out := shaper.Shape(shaping.Input{
			Text:      runes,
			RunStart:  sp.start,
			RunEnd:    sp.end,
			Direction: dir,
			Face:      gtFace,
			Size:      toFixed(size),
			Script:    scriptOf(runes[sp.start:sp.end]),
			Language:  language.NewLanguage("en"),
		})

		run := Run{RTL: sp.rtl, Glyphs: make([]Glyph, 0, len(out.Glyphs))}
		for _, g := range out.Glyphs {
			id := GlyphID(g.GlyphID)
			glyph := Glyph{
				ID:       id,
				Position: geom.Pt(pen+fromFixed(g.XOffset), -fromFixed(g.YOffset)),
				Advance:  fromFixed(g.XAdvance),
			}
			if b, ok := face.inkBounds(id, size); ok {
				glyph.Bounds = geom.MakeLTRB(fromFixed(b.Min.X), fromFixed(b.Min.Y), fromFixed(b.Max.X), fromFixed(b.Max.Y))
			}
			run.Glyphs = append(run.Glyphs, glyph)
			pen += glyph.Advance
		}
		runs = append(runs, run)
	}
	return NewFrame(face, size, runs)
}

// bidiSpans splits s into directional runs in visual order. n is the rune
// count of s.
func bidiSpans(s string, n int) []span {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []span{{start: 0, end: n}}
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		return []span{{start: 0, end: n}}
	}
	spans := make([]span, 0, order.NumRuns())
	for i := 0; i < order.NumRuns(); i++ {
		r := order.Run(i)
		start, end := r.Pos()
		if end >= n {
			end = n - 1
		}
		if start > end {
			continue
		}
		spans = append(spans, span{start: start, end: end + 1, rtl: r.Direction() == bidi.RightToLeft})
	}
	if len(spans) == 0 {
		return []span{{start: 0, end: n}}
	}
	return spans
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
