// Package blend implements Porter-Duff compositing operators and the
// advanced blend modes on floating point colors.
//
// Premultiplied operates on premultiplied colors and is what a backend uses
// per pixel. Colors operates on straight-alpha colors and is used to fold
// draws into a clear color analytically.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/gogpu/compositor/geom"

// Func blends a premultiplied source over a premultiplied destination.
type Func func(dst, src geom.Color) geom.Color

// Colors blends straight-alpha src onto straight-alpha dst and returns a
// straight-alpha result.
func Colors(dst, src geom.Color, mode geom.BlendMode) geom.Color {
	switch mode {
	case geom.BlendModeClear:
		return geom.BlackTransparent
	case geom.BlendModeSource:
		return src
	case geom.BlendModeDestination:
		return dst
	}
	return Premultiplied(dst.Premultiply(), src.Premultiply(), mode).Unpremultiply()
}

// Premultiplied blends premultiplied src onto premultiplied dst.
func Premultiplied(dst, src geom.Color, mode geom.BlendMode) geom.Color {
	return FuncFor(mode)(dst, src)
}

// FuncFor returns the blend function for mode. Unknown modes use
// source-over.
func FuncFor(mode geom.BlendMode) Func {
	if int(mode) < len(funcs) {
		return funcs[mode]
	}
	return blendSourceOver
}

var funcs = [...]Func{
	geom.BlendModeClear:           blendClear,
	geom.BlendModeSource:          blendSource,
	geom.BlendModeDestination:     blendDestination,
	geom.BlendModeSourceOver:      blendSourceOver,
	geom.BlendModeDestinationOver: blendDestinationOver,
	geom.BlendModeSourceIn:        blendSourceIn,
	geom.BlendModeDestinationIn:   blendDestinationIn,
	geom.BlendModeSourceOut:       blendSourceOut,
	geom.BlendModeDestinationOut:  blendDestinationOut,
	geom.BlendModeSourceATop:      blendSourceATop,
	geom.BlendModeDestinationATop: blendDestinationATop,
	geom.BlendModeXor:             blendXor,
	geom.BlendModePlus:            blendPlus,
	geom.BlendModeModulate:        blendModulate,
	geom.BlendModeScreen:          separable(screen),
	geom.BlendModeOverlay:         separable(overlay),
	geom.BlendModeDarken:          separable(darken),
	geom.BlendModeLighten:         separable(lighten),
	geom.BlendModeColorDodge:      separable(colorDodge),
	geom.BlendModeColorBurn:       separable(colorBurn),
	geom.BlendModeHardLight:       separable(hardLight),
	geom.BlendModeSoftLight:       separable(softLight),
	geom.BlendModeDifference:      separable(difference),
	geom.BlendModeExclusion:       separable(exclusion),
	geom.BlendModeMultiply:        separable(multiply),
	geom.BlendModeHue:             nonSeparable(hslHue),
	geom.BlendModeSaturation:      nonSeparable(hslSaturation),
	geom.BlendModeColor:           nonSeparable(hslColor),
	geom.BlendModeLuminosity:      nonSeparable(hslLuminosity),
}
