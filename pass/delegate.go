// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Delegate decides how a pass is composited into its parent.
type Delegate interface {
	// CanElide reports whether the pass has no visible effect and can be
	// skipped entirely.
	CanElide() bool

	// CanCollapseIntoParentPass reports whether the elements of p can be
	// drawn directly into the render pass of its parent. A delegate that
	// returns true may rewrite the entities of p so that drawing them
	// inline matches compositing the offscreen result.
	CanCollapseIntoParentPass(p *EntityPass) bool

	// CreateContentsForSubpassTarget returns the contents that composite
	// the rendered subpass texture. effect is the transform of the pass
	// relative to the texture origin.
	CreateContentsForSubpassTarget(tex gpu.Texture, effect geom.Matrix) entity.Contents

	// WithImageFilter wraps in with the image filter of the pass, or returns
	// nil when the pass has none.
	WithImageFilter(in contents.FilterInput, effect geom.Matrix) *contents.FilterContents
}

// BackdropFilterProc builds the filter applied to the backdrop of a pass.
type BackdropFilterProc func(in contents.FilterInput, effect geom.Matrix, mode contents.RenderingMode) *contents.FilterContents

// DefaultDelegate collapses every pass and composites offscreen results
// unchanged.
type DefaultDelegate struct{}

// CanElide implements Delegate.
func (DefaultDelegate) CanElide() bool { return false }

// CanCollapseIntoParentPass implements Delegate.
func (DefaultDelegate) CanCollapseIntoParentPass(*EntityPass) bool { return true }

// CreateContentsForSubpassTarget implements Delegate.
func (DefaultDelegate) CreateContentsForSubpassTarget(tex gpu.Texture, _ geom.Matrix) entity.Contents {
	return contents.NewTexture(tex, geom.MakeSize(tex.Size()))
}

// WithImageFilter implements Delegate.
func (DefaultDelegate) WithImageFilter(contents.FilterInput, geom.Matrix) *contents.FilterContents {
	return nil
}
