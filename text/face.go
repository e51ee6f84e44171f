package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("text: invalid font")

// Face is a parsed font. It is safe for concurrent use.
type Face struct {
	name string
	sfnt *sfnt.Font
	gt   *gtfont.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// ParseFace parses TrueType or OpenType data.
func ParseFace(data []byte) (*Face, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	gt, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	f := &Face{sfnt: sf, gt: gt.Font}
	if name, err := sf.Name(&f.buf, sfnt.NameIDFull); err == nil {
		f.name = name
	}
	return f, nil
}

var (
	defaultOnce sync.Once
	defaultFace *Face
)

// DefaultFace returns Go Regular.
func DefaultFace() *Face {
	defaultOnce.Do(func() {
		f, err := ParseFace(goregular.TTF)
		if err != nil {
			panic("text: embedded Go Regular: " + err.Error())
		}
		defaultFace = f
	})
	return defaultFace
}

// Name returns the full font name, or "" when the font has none.
func (f *Face) Name() string { return f.name }

// Metrics are the vertical metrics of a face at one size, in pixels.
// Ascent is positive above the baseline and Descent positive below it.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Face) Metrics(size float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.sfnt.Metrics(&f.buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		LineGap: fromFixed(m.Height - m.Ascent - m.Descent),
	}
}

// inkBounds returns the ink bounds of a glyph relative to its origin, y
// down, or false for glyphs without ink.
func (f *Face) inkBounds(id GlyphID, size float64) (fixed.Rectangle26_6, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, _, err := f.sfnt.GlyphBounds(&f.buf, sfnt.GlyphIndex(id), toFixed(size), font.HintingNone)
	if err != nil || b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y {
		return fixed.Rectangle26_6{}, false
	}
	return b, true
}

// outline returns the glyph outline in pixels, y down.
func (f *Face) outline(id GlyphID, size float64) (sfnt.Segments, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	segs, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), toFixed(size), nil)
	if err != nil {
		return nil, err
	}
	// segs aliases the buffer.
	return append(sfnt.Segments(nil), segs...), nil
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
