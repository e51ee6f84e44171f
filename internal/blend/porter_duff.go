package blend

import (
	"math"

	"github.com/gogpu/compositor/geom"
)

// Porter-Duff operators on premultiplied colors. Every channel, alpha
// included, follows the same equation.

// blendClear: 0
func blendClear(_, _ geom.Color) geom.Color { return geom.Color{} }

// blendSource: S
func blendSource(_, s geom.Color) geom.Color { return s }

// blendDestination: D
func blendDestination(d, _ geom.Color) geom.Color { return d }

// blendSourceOver: S + D*(1-Sa)
func blendSourceOver(d, s geom.Color) geom.Color { return s.Add(d.Mul(1 - s.A)) }

// blendDestinationOver: D + S*(1-Da)
func blendDestinationOver(d, s geom.Color) geom.Color { return d.Add(s.Mul(1 - d.A)) }

// blendSourceIn: S*Da
func blendSourceIn(d, s geom.Color) geom.Color { return s.Mul(d.A) }

// blendDestinationIn: D*Sa
func blendDestinationIn(d, s geom.Color) geom.Color { return d.Mul(s.A) }

// blendSourceOut: S*(1-Da)
func blendSourceOut(d, s geom.Color) geom.Color { return s.Mul(1 - d.A) }

// blendDestinationOut: D*(1-Sa)
func blendDestinationOut(d, s geom.Color) geom.Color { return d.Mul(1 - s.A) }

// blendSourceATop: S*Da + D*(1-Sa)
func blendSourceATop(d, s geom.Color) geom.Color { return s.Mul(d.A).Add(d.Mul(1 - s.A)) }

// blendDestinationATop: D*Sa + S*(1-Da)
func blendDestinationATop(d, s geom.Color) geom.Color { return d.Mul(s.A).Add(s.Mul(1 - d.A)) }

// blendXor: S*(1-Da) + D*(1-Sa)
func blendXor(d, s geom.Color) geom.Color { return s.Mul(1 - d.A).Add(d.Mul(1 - s.A)) }

// blendPlus: min(S + D, 1)
func blendPlus(d, s geom.Color) geom.Color {
	return geom.Color{
		R: math.Min(s.R+d.R, 1),
		G: math.Min(s.G+d.G, 1),
		B: math.Min(s.B+d.B, 1),
		A: math.Min(s.A+d.A, 1),
	}
}

// blendModulate: S*D
func blendModulate(d, s geom.Color) geom.Color {
	return geom.Color{R: s.R * d.R, G: s.G * d.G, B: s.B * d.B, A: s.A * d.A}
}
