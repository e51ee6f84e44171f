package text

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/compositor/internal/cache"
)

// glyphKey identifies a glyph mask: one glyph of one face at one pixel size.
type glyphKey struct {
	face *Face
	id   GlyphID
	size fixed.Int26_6
}

// mask is the coverage of a glyph. Origin is the offset of the mask's top
// left pixel from the glyph origin.
type mask struct {
	img    *image.Alpha
	origin image.Point
}

// masks holds rasterized glyphs across atlas rebuilds.
var masks = cache.New[glyphKey, *mask](4096)

// glyphMask returns the cached mask for k, rasterizing it on a miss. Glyphs
// without ink yield nil.
func glyphMask(k glyphKey) *mask {
	return masks.GetOrCreate(k, func() *mask {
		return rasterize(k)
	})
}

func rasterize(k glyphKey) *mask {
	size := fromFixed(k.size)
	b, ok := k.face.inkBounds(k.id, size)
	if !ok {
		return nil
	}
	segs, err := k.face.outline(k.id, size)
	if err != nil || len(segs) == 0 {
		return nil
	}
	x0 := int(math.Floor(fromFixed(b.Min.X)))
	y0 := int(math.Floor(fromFixed(b.Min.Y)))
	x1 := int(math.Ceil(fromFixed(b.Max.X)))
	y1 := int(math.Ceil(fromFixed(b.Max.Y)))
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil
	}

	ox, oy := float32(x0), float32(y0)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 - oy
	}
	r := vector.NewRasterizer(w, h)
	for i, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				r.ClosePath()
			}
			r.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	r.ClosePath()

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	return &mask{img: img, origin: image.Pt(x0, y0)}
}

// blit copies m into dst at p.
func (m *mask) blit(dst *image.Alpha, p image.Point) {
	draw.Draw(dst, m.img.Bounds().Add(p), m.img, image.Point{}, draw.Src)
}
