package blend

import (
	"testing"

	"github.com/gogpu/compositor/geom"
)

const eps = 1e-9

func TestPremultiplied_PorterDuff(t *testing.T) {
	d := geom.RGBA(0, 0, 1, 1).Premultiply()
	s := geom.RGBA(1, 0, 0, 0.5).Premultiply()
	tests := []struct {
		mode geom.BlendMode
		want geom.Color
	}{
		{geom.BlendModeClear, geom.Color{}},
		{geom.BlendModeSource, s},
		{geom.BlendModeDestination, d},
		{geom.BlendModeSourceOver, geom.RGBA(0.5, 0, 0.5, 1)},
		{geom.BlendModeDestinationOver, d},
		{geom.BlendModeSourceIn, s},
		{geom.BlendModeDestinationIn, geom.RGBA(0, 0, 0.5, 0.5)},
		{geom.BlendModeSourceOut, geom.Color{}},
		{geom.BlendModeDestinationOut, geom.RGBA(0, 0, 0.5, 0.5)},
		{geom.BlendModeSourceATop, geom.RGBA(0.5, 0, 0.5, 1)},
		{geom.BlendModeDestinationATop, geom.RGBA(0, 0, 0.5, 0.5)},
		{geom.BlendModeXor, geom.RGBA(0, 0, 0.5, 0.5)},
		{geom.BlendModePlus, geom.RGBA(0.5, 0, 1, 1)},
		{geom.BlendModeModulate, geom.RGBA(0, 0, 0, 0.5)},
	}
	for _, tt := range tests {
		if got := Premultiplied(d, s, tt.mode); !got.ApproxEqual(tt.want, eps) {
			t.Errorf("Premultiplied(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestPremultiplied_AdvancedOpaque(t *testing.T) {
	d := geom.RGB(0.5, 0.25, 1)
	s := geom.RGB(0.5, 0.5, 0.5)
	tests := []struct {
		mode geom.BlendMode
		want geom.Color
	}{
		{geom.BlendModeMultiply, geom.RGB(0.25, 0.125, 0.5)},
		{geom.BlendModeScreen, geom.RGB(0.75, 0.625, 1)},
		{geom.BlendModeDarken, geom.RGB(0.5, 0.25, 0.5)},
		{geom.BlendModeLighten, geom.RGB(0.5, 0.5, 1)},
		{geom.BlendModeDifference, geom.RGB(0, 0.25, 0.5)},
		{geom.BlendModeExclusion, geom.RGB(0.5, 0.5, 0.5)},
	}
	for _, tt := range tests {
		if got := Premultiplied(d, s, tt.mode); !got.ApproxEqual(tt.want, eps) {
			t.Errorf("Premultiplied(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestPremultiplied_TransparentOperands(t *testing.T) {
	d := geom.RGBA(0.2, 0.3, 0.4, 1)
	for m := geom.BlendModeScreen; m <= geom.LastAdvancedBlendMode; m++ {
		if got := Premultiplied(d, geom.Color{}, m); got != d {
			t.Errorf("Premultiplied(%v) with transparent source = %v, want %v", m, got, d)
		}
	}
}

func TestNonSeparable_LuminosityPreserved(t *testing.T) {
	d := geom.RGB(0.2, 0.6, 0.4)
	s := geom.RGB(0.9, 0.1, 0.1)
	got := Premultiplied(d, s, geom.BlendModeColor)
	if l, want := Lum(got.R, got.G, got.B), Lum(d.R, d.G, d.B); l-want > 1e-6 || want-l > 1e-6 {
		t.Errorf("Color blend luminance = %v, want %v", l, want)
	}
}

func TestColors_ClearColorFold(t *testing.T) {
	// Opaque red replaced by the source, then 75% blue source-over.
	acc := Colors(geom.BlackTransparent, geom.Red, geom.BlendModeSource)
	acc = Colors(acc, geom.RGBA(0, 0, 1, 0.75), geom.BlendModeSourceOver)
	want := geom.RGBA(0.25, 0, 0.75, 1)
	if !acc.ApproxEqual(want, eps) {
		t.Errorf("Colors() = %v, want %v", acc, want)
	}
}
