package blend

import "math"

// Lum returns the luminance of a color using BT.601 coefficients.
func Lum(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation (max - min) of a color.
func Sat(r, g, b float64) float64 {
	return math.Max(r, math.Max(g, b)) - math.Min(r, math.Min(g, b))
}

// ClipColor clips color components to [0,1] while preserving luminance.
func ClipColor(r, g, b float64) (float64, float64, float64) {
	l := Lum(r, g, b)
	n := math.Min(r, math.Min(g, b))
	x := math.Max(r, math.Max(g, b))
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// SetLum sets the luminance of a color while preserving hue and saturation.
func SetLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat sets the saturation of a color while preserving hue.
func SetSat(r, g, b, s float64) (float64, float64, float64) {
	minPtr, midPtr, maxPtr := sortRGB(&r, &g, &b)
	if *maxPtr > *minPtr {
		*midPtr = (*midPtr - *minPtr) * s / (*maxPtr - *minPtr)
		*maxPtr = s
	} else {
		*midPtr, *maxPtr = 0, 0
	}
	*minPtr = 0
	return r, g, b
}

// sortRGB returns pointers to r, g, b sorted by value.
func sortRGB(r, g, b *float64) (minPtr, midPtr, maxPtr *float64) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// hslHue: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func hslHue(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
	r, g, b := SetSat(sr, sg, sb, Sat(dr, dg, db))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

// hslSaturation: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func hslSaturation(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
	r, g, b := SetSat(dr, dg, db, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

// hslColor: SetLum(Cs, Lum(Cb))
func hslColor(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
	return SetLum(sr, sg, sb, Lum(dr, dg, db))
}

// hslLuminosity: SetLum(Cb, Lum(Cs))
func hslLuminosity(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
	return SetLum(dr, dg, db, Lum(sr, sg, sb))
}
