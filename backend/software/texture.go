// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"math"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/gputypes"
)

// Texture is a CPU image with a mip chain of premultiplied colors, or a
// per-pixel stencil plane for depth/stencil formats.
type Texture struct {
	desc    gpu.TextureDescriptor
	levels  []level
	stencil []uint32
}

type level struct {
	w, h int
	pix  []geom.Color
}

func newTexture(desc gpu.TextureDescriptor) *Texture {
	t := &Texture{desc: desc}
	w, h := desc.Size.Width, desc.Size.Height
	for i := 0; i < desc.MipCount; i++ {
		t.levels = append(t.levels, level{w: w, h: h, pix: make([]geom.Color, w*h)})
		w, h = max(1, w/2), max(1, h/2)
	}
	return t
}

func newStencilTexture(desc gpu.TextureDescriptor) *Texture {
	return &Texture{
		desc:    desc,
		stencil: make([]uint32, desc.Size.Width*desc.Size.Height),
	}
}

// Descriptor implements gpu.Texture.
func (t *Texture) Descriptor() gpu.TextureDescriptor { return t.desc }

// Size implements gpu.Texture.
func (t *Texture) Size() geom.ISize { return t.desc.Size }

// SetContents implements gpu.Texture.
func (t *Texture) SetContents(data []byte) error {
	if t.stencil != nil {
		return fmt.Errorf("%w: SetContents on stencil texture", gpu.ErrUnsupported)
	}
	bpp := gpu.BytesPerPixel(t.desc.Format)
	if bpp == 0 {
		return fmt.Errorf("%w: upload of format %v", gpu.ErrUnsupported, t.desc.Format)
	}
	l := &t.levels[0]
	if want := l.w * l.h * bpp; len(data) != want {
		return fmt.Errorf("software: SetContents got %d bytes, want %d", len(data), want)
	}
	for i := range l.pix {
		switch t.desc.Format {
		case gputypes.TextureFormatR8Unorm:
			v := float64(data[i]) / 255
			l.pix[i] = geom.Color{R: v, G: v, B: v, A: v}
		case gputypes.TextureFormatBGRA8Unorm:
			o := i * 4
			l.pix[i] = geom.Color{
				R: float64(data[o+2]) / 255,
				G: float64(data[o+1]) / 255,
				B: float64(data[o]) / 255,
				A: float64(data[o+3]) / 255,
			}
		default:
			o := i * 4
			l.pix[i] = geom.Color{
				R: float64(data[o]) / 255,
				G: float64(data[o+1]) / 255,
				B: float64(data[o+2]) / 255,
				A: float64(data[o+3]) / 255,
			}
		}
	}
	return nil
}

// Pixel returns the premultiplied color at (x, y) of mip level 0, or
// transparent black outside the texture.
func (t *Texture) Pixel(x, y int) geom.Color {
	if len(t.levels) == 0 {
		return geom.Color{}
	}
	l := &t.levels[0]
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return geom.Color{}
	}
	return l.pix[y*l.w+x]
}

// Stencil returns the stencil value at (x, y), or 0 for color textures.
func (t *Texture) Stencil(x, y int) uint32 {
	if t.stencil == nil {
		return 0
	}
	w := t.desc.Size.Width
	if x < 0 || y < 0 || x >= w || y >= t.desc.Size.Height {
		return 0
	}
	return t.stencil[y*w+x]
}

// MipLevels returns the number of allocated mip levels.
func (t *Texture) MipLevels() int { return len(t.levels) }

func (t *Texture) fill(c geom.Color) {
	for i := range t.levels {
		pix := t.levels[i].pix
		for j := range pix {
			pix[j] = c
		}
	}
}

func (t *Texture) fillStencil(v uint32) {
	for i := range t.stencil {
		t.stencil[i] = v
	}
}

// sample reads level 0 at uv in [0,1]^2.
func (t *Texture) sample(uv geom.Point, s gpu.SamplerDescriptor) geom.Color {
	if len(t.levels) == 0 {
		return geom.Color{}
	}
	l := &t.levels[0]
	if s.Decal && (uv.X < 0 || uv.Y < 0 || uv.X > 1 || uv.Y > 1) {
		return geom.Color{}
	}
	fx := uv.X*float64(l.w) - 0.5
	fy := uv.Y*float64(l.h) - 0.5
	if !s.Linear {
		return l.at(int(math.Floor(fx+0.5)), int(math.Floor(fy+0.5)))
	}
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)
	top := l.at(ix, iy).Lerp(l.at(ix+1, iy), tx)
	bottom := l.at(ix, iy+1).Lerp(l.at(ix+1, iy+1), tx)
	return top.Lerp(bottom, ty)
}

// at reads a texel, clamping to the edge.
func (l *level) at(x, y int) geom.Color {
	x = min(max(x, 0), l.w-1)
	y = min(max(y, 0), l.h-1)
	return l.pix[y*l.w+x]
}

// generateMipmaps rebuilds levels 1..n from level 0 with a 2x2 box filter.
func (t *Texture) generateMipmaps() {
	for i := 1; i < len(t.levels); i++ {
		src, dst := &t.levels[i-1], &t.levels[i]
		for y := 0; y < dst.h; y++ {
			for x := 0; x < dst.w; x++ {
				sx, sy := x*2, y*2
				c := src.at(sx, sy).Add(src.at(sx+1, sy)).Add(src.at(sx, sy+1)).Add(src.at(sx+1, sy+1))
				dst.pix[y*dst.w+x] = c.Mul(0.25)
			}
		}
	}
}

// copyFrom copies level 0 of src into t over their common extent.
func (t *Texture) copyFrom(src *Texture) {
	if len(t.levels) == 0 || len(src.levels) == 0 {
		return
	}
	d, s := &t.levels[0], &src.levels[0]
	w, h := min(d.w, s.w), min(d.h, s.h)
	for y := 0; y < h; y++ {
		copy(d.pix[y*d.w:y*d.w+w], s.pix[y*s.w:y*s.w+w])
	}
}

var _ gpu.Texture = (*Texture)(nil)
