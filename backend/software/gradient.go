// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"math"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// evalGradient returns the straight-alpha gradient color at local point p.
func evalGradient(g *gpu.GradientInfo, p geom.Point) geom.Color {
	if len(g.Stops) == 0 {
		return geom.Color{}
	}
	p = g.EffectTransform.TransformPoint(p)

	var t float64
	switch g.Kind {
	case gpu.GradientLinear:
		d := g.End.Sub(g.Start)
		l2 := d.Dot(d)
		if l2 == 0 {
			return g.Stops[len(g.Stops)-1].Color
		}
		t = p.Sub(g.Start).Dot(d) / l2
	case gpu.GradientRadial:
		if g.Radius <= 0 {
			return geom.Color{}
		}
		t = p.Sub(g.Center).Length() / g.Radius
	case gpu.GradientSweep:
		span := g.EndAngle - g.StartAngle
		if span == 0 {
			return g.Stops[0].Color
		}
		d := p.Sub(g.Center)
		a := math.Atan2(d.Y, d.X)
		if a < 0 {
			a += 2 * math.Pi
		}
		t = (a - g.StartAngle) / span
	}

	t, ok := applyTileMode(t, g.TileMode)
	if !ok {
		return geom.Color{}
	}
	return stopColor(g.Stops, t)
}

func applyTileMode(t float64, mode gpu.TileMode) (float64, bool) {
	switch mode {
	case gpu.TileRepeat:
		return t - math.Floor(t), true
	case gpu.TileMirror:
		m := math.Mod(math.Abs(t), 2)
		if m > 1 {
			m = 2 - m
		}
		return m, true
	case gpu.TileDecal:
		return t, t >= 0 && t <= 1
	default:
		return math.Max(0, math.Min(1, t)), true
	}
}

// stopColor interpolates between the stops surrounding t. Stops are sorted
// by offset.
func stopColor(stops []gpu.GradientStop, t float64) geom.Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}
