package text

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// atlasPadding keeps neighbouring masks apart so linear sampling at a mask
// edge never reads the next glyph.
const atlasPadding = 1

// GlyphSlot locates a glyph in an atlas. UV is the normalized texture rect
// and Bounds the mask rect relative to the glyph origin in atlas pixels.
type GlyphSlot struct {
	UV     geom.Rect
	Bounds geom.Rect
}

// GlyphAtlas is a single-channel texture of glyph masks.
type GlyphAtlas struct {
	texture gpu.Texture
	size    geom.ISize
	slots   map[glyphKey]GlyphSlot
}

// Texture returns the atlas texture, or nil when the atlas holds no glyphs.
func (a *GlyphAtlas) Texture() gpu.Texture { return a.texture }

// Size returns the atlas texture size.
func (a *GlyphAtlas) Size() geom.ISize { return a.size }

// GlyphCount returns the number of glyph masks in the atlas.
func (a *GlyphAtlas) GlyphCount() int { return len(a.slots) }

// Lookup returns the slot of glyph id of face at size pixels per em.
func (a *GlyphAtlas) Lookup(face *Face, id GlyphID, size float64) (GlyphSlot, bool) {
	if a == nil {
		return GlyphSlot{}, false
	}
	s, ok := a.slots[glyphKey{face: face, id: id, size: toFixed(size)}]
	return s, ok
}

// LazyGlyphAtlas collects the text frames of one render and builds their
// atlas on first use.
type LazyGlyphAtlas struct {
	keys  map[glyphKey]struct{}
	atlas *GlyphAtlas
}

// NewLazyGlyphAtlas creates an empty atlas.
func NewLazyGlyphAtlas() *LazyGlyphAtlas {
	return &LazyGlyphAtlas{keys: make(map[glyphKey]struct{})}
}

// AddTextFrame records the glyphs of f drawn at scale. Frames added after
// the atlas was built are ignored until ResetTextFrames.
func (l *LazyGlyphAtlas) AddTextFrame(f *Frame, scale float64) {
	if f == nil || l.atlas != nil {
		return
	}
	size := toFixed(f.Size() * scale)
	for _, r := range f.Runs() {
		for _, g := range r.Glyphs {
			l.keys[glyphKey{face: f.Face(), id: g.ID, size: size}] = struct{}{}
		}
	}
}

// ResetTextFrames drops the collected frames and the built atlas.
func (l *LazyGlyphAtlas) ResetTextFrames() {
	l.keys = make(map[glyphKey]struct{})
	l.atlas = nil
}

// Atlas returns the atlas for the collected frames, building it with ctx
// the first time.
func (l *LazyGlyphAtlas) Atlas(ctx gpu.Context) (*GlyphAtlas, error) {
	if l.atlas != nil {
		return l.atlas, nil
	}
	a, err := buildAtlas(ctx, l.keys)
	if err != nil {
		return nil, err
	}
	l.atlas = a
	return a, nil
}

type placement struct {
	key glyphKey
	m   *mask
	at  image.Point
}

func buildAtlas(ctx gpu.Context, keys map[glyphKey]struct{}) (*GlyphAtlas, error) {
	a := &GlyphAtlas{slots: make(map[glyphKey]GlyphSlot)}

	var (
		items  []placement
		area   int
		widest int
	)
	for k := range keys {
		m := glyphMask(k)
		if m == nil {
			continue
		}
		b := m.img.Bounds()
		items = append(items, placement{key: k, m: m})
		area += (b.Dx() + atlasPadding) * (b.Dy() + atlasPadding)
		widest = max(widest, b.Dx()+atlasPadding)
	}
	if len(items) == 0 {
		return a, nil
	}

	// Shelf packing, tallest first.
	sort.Slice(items, func(i, j int) bool {
		hi, hj := items[i].m.img.Bounds().Dy(), items[j].m.img.Bounds().Dy()
		if hi != hj {
			return hi > hj
		}
		if items[i].key.id != items[j].key.id {
			return items[i].key.id < items[j].key.id
		}
		return items[i].key.size < items[j].key.size
	})
	width := max(widest, nextPow2(int(math.Ceil(math.Sqrt(float64(area))))))
	x, y, shelf := 0, 0, 0
	for i := range items {
		b := items[i].m.img.Bounds()
		if x+b.Dx() > width {
			x, y, shelf = 0, y+shelf+atlasPadding, 0
		}
		items[i].at = image.Pt(x, y)
		x += b.Dx() + atlasPadding
		shelf = max(shelf, b.Dy())
	}
	height := y + shelf

	caps := ctx.Capabilities()
	if m := caps.MaxTextureSize; m > 0 && (width > m || height > m) {
		return nil, fmt.Errorf("%w: glyph atlas %dx%d exceeds %d", gpu.ErrAllocation, width, height, m)
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	fw, fh := float64(width), float64(height)
	for _, it := range items {
		it.m.blit(img, it.at)
		b := it.m.img.Bounds()
		a.slots[it.key] = GlyphSlot{
			UV: geom.MakeXYWH(float64(it.at.X)/fw, float64(it.at.Y)/fh,
				float64(b.Dx())/fw, float64(b.Dy())/fh),
			Bounds: geom.MakeXYWH(float64(it.m.origin.X), float64(it.m.origin.Y),
				float64(b.Dx()), float64(b.Dy())),
		}
	}

	a.size = geom.ISize{Width: width, Height: height}
	tex, err := ctx.Allocator().CreateTexture(gpu.TextureDescriptor{
		Label:       "GlyphAtlas",
		Size:        a.size,
		Format:      gputypes.TextureFormatR8Unorm,
		MipCount:    1,
		SampleCount: 1,
		StorageMode: gpu.StorageHostVisible,
		Usage:       gpu.UsageShaderRead | gpu.UsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph atlas: %w", err)
	}
	if err := tex.SetContents(img.Pix); err != nil {
		return nil, fmt.Errorf("glyph atlas: %w", err)
	}
	a.texture = tex
	compositor.Logger().Debug("glyph atlas built", "glyphs", len(items), "width", width, "height", height)
	return a, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
