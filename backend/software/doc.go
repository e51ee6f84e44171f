// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software is a CPU implementation of the gpu interfaces.
//
// Textures hold premultiplied float colors. Render passes honor load and
// store actions, stencil modes and blend modes, and execute every pipeline
// kind on the CPU. Triangles are scan-converted at pixel centres without
// anti-aliasing, so output is deterministic and suitable for pixel tests.
//
// Multisampling is simulated: a multisample texture stores one sample per
// pixel and a resolve copies it into the resolve texture.
//
// Commands execute when their command buffer is submitted.
//
//	ctx := software.NewContext(software.WithMSAA(true))
//	// ... render into a target allocated from ctx ...
//	img, err := software.ReadPixels(target.RenderTargetTexture())
package software
