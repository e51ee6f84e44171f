// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pass implements the EntityPass tree and the renderer that
// flattens it into GPU render passes.
//
// An EntityPass is the unit of save-layer semantics: an ordered list of
// entities and child passes drawn back to front. The canvas builds the tree
// while recording; Render then walks it top-down. For every child pass the
// renderer either collapses it into the active render pass of its parent or
// renders it into an offscreen target sized by its coverage and composites
// the result as a textured entity. Both paths produce the same pixels.
//
// Clips are encoded in the stencil buffer. Every entity carries the clip
// depth it is tested against, and clip markers carry the depth they restore
// to, assigned when the clip is popped:
//
//	p := pass.New()
//	p.AddEntity(draw)      // depth 2
//	p.PushClip(clip)       // depth assigned on pop
//	p.AddEntity(clipped)   // depth 3
//	p.PopClips(1, 3)       // clip.NewClipDepth = 3
//
// Leading opaque draws that fill the whole target are folded into the clear
// color of the render target instead of being drawn.
package pass
