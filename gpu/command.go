// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "github.com/gogpu/compositor/geom"

// CommandBuffer collects passes and submits them to the device in order.
type CommandBuffer interface {
	SetLabel(label string)
	CreateRenderPass(target RenderTarget) (RenderPass, error)
	CreateBlitPass() (BlitPass, error)
	// Submit executes all encoded passes. A buffer can be submitted once.
	Submit() error
}

// RenderPass records draws into one render target.
//
// Pipeline, stencil reference, vertex buffer and bindings are sticky: they
// apply to every following Draw until changed. The command label applies to
// the next Draw only.
type RenderPass interface {
	SetLabel(label string)
	RenderTarget() RenderTarget
	RenderTargetSize() geom.ISize

	SetCommandLabel(label string)
	SetPipeline(desc PipelineDescriptor)
	SetStencilReference(ref uint32)
	SetVertexBuffer(vb VertexBuffer)
	Bind(b Bindings)
	Draw() error

	// EncodeCommands finishes the pass. No draws may follow.
	EncodeCommands() error
}

// BlitPass records texture copies and mipmap generation.
type BlitPass interface {
	SetLabel(label string)
	AddCopy(src, dst Texture) error
	GenerateMipmap(tex Texture) error
	EncodeCommands() error
}

// OrthographicTransform returns the MVP for drawing in target pixel
// coordinates. Pixel space is the compositor's device space, so this is the
// identity.
func OrthographicTransform(geom.ISize) geom.Matrix {
	return geom.Identity()
}
