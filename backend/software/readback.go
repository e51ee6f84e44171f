// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// ReadPixels copies mip level 0 of a texture created by this backend into
// an 8-bit premultiplied image.
func ReadPixels(tex gpu.Texture) (*image.RGBA, error) {
	t, ok := tex.(*Texture)
	if !ok {
		return nil, fmt.Errorf("%w: foreign texture %T", gpu.ErrUnsupported, tex)
	}
	if len(t.levels) == 0 {
		return nil, fmt.Errorf("%w: readback of stencil texture", gpu.ErrUnsupported)
	}
	l := &t.levels[0]
	img := image.NewRGBA(image.Rect(0, 0, l.w, l.h))
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			img.SetRGBA(x, y, toRGBA(l.pix[y*l.w+x]))
		}
	}
	return img, nil
}

// ReadColor returns the premultiplied color at (x, y) of a texture created
// by this backend.
func ReadColor(tex gpu.Texture, x, y int) (geom.Color, error) {
	t, ok := tex.(*Texture)
	if !ok {
		return geom.Color{}, fmt.Errorf("%w: foreign texture %T", gpu.ErrUnsupported, tex)
	}
	return t.Pixel(x, y), nil
}

func toRGBA(c geom.Color) color.RGBA {
	c = c.Clamp()
	q := func(v float64) uint8 { return uint8(math.Round(v * 255)) }
	return color.RGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: q(c.A)}
}
