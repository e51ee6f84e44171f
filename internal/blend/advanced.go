package blend

import (
	"math"

	"github.com/gogpu/compositor/geom"
)

// separable lifts a per-channel blend function B(Cs, Cb) on unmultiplied
// channels to the compositing formula
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cb)
//	Alpha  = Sa + Da * (1 - Sa)
func separable(b func(cs, cb float64) float64) Func {
	return func(d, s geom.Color) geom.Color {
		if s.A == 0 {
			return d
		}
		if d.A == 0 {
			return s
		}
		us, ud := s.Unpremultiply(), d.Unpremultiply()
		saDa := s.A * d.A
		return geom.Color{
			R: (1-s.A)*d.R + (1-d.A)*s.R + saDa*b(us.R, ud.R),
			G: (1-s.A)*d.G + (1-d.A)*s.G + saDa*b(us.G, ud.G),
			B: (1-s.A)*d.B + (1-d.A)*s.B + saDa*b(us.B, ud.B),
			A: s.A + d.A*(1-s.A),
		}
	}
}

// nonSeparable applies a blend that mixes the RGB triple as a whole.
func nonSeparable(b func(sr, sg, sb, dr, dg, db float64) (float64, float64, float64)) Func {
	return func(d, s geom.Color) geom.Color {
		if s.A == 0 {
			return d
		}
		if d.A == 0 {
			return s
		}
		us, ud := s.Unpremultiply(), d.Unpremultiply()
		br, bg, bb := b(us.R, us.G, us.B, ud.R, ud.G, ud.B)
		saDa := s.A * d.A
		return geom.Color{
			R: (1-s.A)*d.R + (1-d.A)*s.R + saDa*br,
			G: (1-s.A)*d.G + (1-d.A)*s.G + saDa*bg,
			B: (1-s.A)*d.B + (1-d.A)*s.B + saDa*bb,
			A: s.A + d.A*(1-s.A),
		}
	}
}

// multiply: Cs * Cb
func multiply(cs, cb float64) float64 { return cs * cb }

// screen: 1 - (1 - Cs) * (1 - Cb)
func screen(cs, cb float64) float64 { return cs + cb - cs*cb }

// overlay: HardLight with swapped layers
func overlay(cs, cb float64) float64 { return hardLight(cb, cs) }

// darken: min(Cs, Cb)
func darken(cs, cb float64) float64 { return math.Min(cs, cb) }

// lighten: max(Cs, Cb)
func lighten(cs, cb float64) float64 { return math.Max(cs, cb) }

// colorDodge: brightens the backdrop to reflect the source
func colorDodge(cs, cb float64) float64 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	}
	return math.Min(1, cb/(1-cs))
}

// colorBurn: darkens the backdrop to reflect the source
func colorBurn(cs, cb float64) float64 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	}
	return 1 - math.Min(1, (1-cb)/cs)
}

// hardLight: Multiply or Screen depending on the source
func hardLight(cs, cb float64) float64 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

// softLight: soft version of HardLight
func softLight(cs, cb float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var dx float64
	if cb <= 0.25 {
		dx = ((16*cb-12)*cb + 4) * cb
	} else {
		dx = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(dx-cb)
}

// difference: |Cs - Cb|
func difference(cs, cb float64) float64 { return math.Abs(cs - cb) }

// exclusion: Cs + Cb - 2 * Cs * Cb
func exclusion(cs, cb float64) float64 { return cs + cb - 2*cs*cb }
