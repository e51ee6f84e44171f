// Package text shapes strings into positioned glyphs and packs glyph masks
// into an atlas texture.
//
// Shape runs the Unicode bidi algorithm over a string, shapes each run with
// HarfBuzz (go-text/typesetting) and returns a Frame of glyphs positioned
// relative to the baseline origin. Glyph bounds and outlines come from the
// same font parsed with golang.org/x/image/font/sfnt.
//
// A LazyGlyphAtlas collects the frames drawn during one render, then builds
// a single-channel atlas texture holding a coverage mask for every distinct
// glyph and size the first time the atlas is needed.
//
//	frame := text.Shape("Hello", text.DefaultFace(), 24)
//	atlas := text.NewLazyGlyphAtlas()
//	atlas.AddTextFrame(frame, 1)
//	a, err := atlas.Atlas(ctx)
package text
