// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/gpu"
)

// EntityPassTarget is the render target of a pass plus the spare resolve
// texture used to read the backdrop of a multisampled target.
type EntityPassTarget struct {
	target          gpu.RenderTarget
	secondary       gpu.Texture
	readFromResolve bool
}

// NewEntityPassTarget wraps t. When readFromResolve is set, the backdrop
// of t is read directly from its resolve texture.
func NewEntityPassTarget(t gpu.RenderTarget, readFromResolve bool) *EntityPassTarget {
	return &EntityPassTarget{target: t, readFromResolve: readFromResolve}
}

// RenderTarget returns the current target.
func (t *EntityPassTarget) RenderTarget() gpu.RenderTarget { return t.target }

func (t *EntityPassTarget) set(rt gpu.RenderTarget) { t.target = rt }

// IsValid reports whether the target has a color texture.
func (t *EntityPassTarget) IsValid() bool { return t.target.Color.Texture != nil }

// Flip returns a texture holding what the target has rendered so far, so a
// following pass can sample it while drawing into the target again.
//
// Single-sampled targets return their color texture. Multisampled targets
// swap in a spare resolve texture, allocated on first use, and return the
// previous one.
func (t *EntityPassTarget) Flip(alloc gpu.Allocator) (gpu.Texture, error) {
	color := t.target.Color
	if color.ResolveTexture == nil {
		compositor.Logger().Error("pass: flipped a target without a resolve texture")
		return color.Texture, nil
	}
	if t.readFromResolve {
		return color.ResolveTexture, nil
	}
	if t.secondary == nil {
		tex, err := alloc.CreateTexture(color.ResolveTexture.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("pass: flip: %w", err)
		}
		t.secondary = tex
	}
	t.secondary, color.ResolveTexture = color.ResolveTexture, t.secondary
	t.target.Color = color
	return t.secondary, nil
}
