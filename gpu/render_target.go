// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// LoadAction says what a render pass does with an attachment's contents
// when it begins.
type LoadAction uint8

const (
	LoadDontCare LoadAction = iota
	LoadLoad
	LoadClear
)

// String returns the action name.
func (a LoadAction) String() string {
	switch a {
	case LoadDontCare:
		return "DontCare"
	case LoadLoad:
		return "Load"
	case LoadClear:
		return "Clear"
	default:
		return "Unknown"
	}
}

// LoadOp maps the action onto the WebGPU load op. WebGPU has no
// dont-care load; clearing is the cheaper equivalent.
func (a LoadAction) LoadOp() gputypes.LoadOp {
	if a == LoadLoad {
		return gputypes.LoadOpLoad
	}
	return gputypes.LoadOpClear
}

// StoreAction says what a render pass does with an attachment when it ends.
type StoreAction uint8

const (
	StoreDontCare StoreAction = iota
	StoreStore
	StoreMultisampleResolve
	StoreAndMultisampleResolve
)

// String returns the action name.
func (a StoreAction) String() string {
	switch a {
	case StoreDontCare:
		return "DontCare"
	case StoreStore:
		return "Store"
	case StoreMultisampleResolve:
		return "MultisampleResolve"
	case StoreAndMultisampleResolve:
		return "StoreAndMultisampleResolve"
	default:
		return "Unknown"
	}
}

// StoreOp maps the action onto the WebGPU store op of the multisample
// attachment. Resolves are expressed separately through the resolve target.
func (a StoreAction) StoreOp() gputypes.StoreOp {
	switch a {
	case StoreStore, StoreAndMultisampleResolve:
		return gputypes.StoreOpStore
	default:
		return gputypes.StoreOpDiscard
	}
}

// Resolves reports whether the action writes the resolve texture.
func (a StoreAction) Resolves() bool {
	return a == StoreMultisampleResolve || a == StoreAndMultisampleResolve
}

// ColorAttachment is color attachment 0 of a render target.
type ColorAttachment struct {
	Texture        Texture
	ResolveTexture Texture
	LoadAction     LoadAction
	StoreAction    StoreAction
	// ClearColor is premultiplied.
	ClearColor gputypes.Color
}

// StencilAttachment is a combined depth/stencil attachment.
type StencilAttachment struct {
	Texture      Texture
	LoadAction   LoadAction
	StoreAction  StoreAction
	ClearStencil uint32
}

// RenderTarget describes the attachments of a render pass.
type RenderTarget struct {
	Color   ColorAttachment
	Stencil *StencilAttachment
}

// Size returns the size of the color texture, or zero when there is none.
func (t RenderTarget) Size() geom.ISize {
	if t.Color.Texture == nil {
		return geom.ISize{}
	}
	return t.Color.Texture.Size()
}

// HasStencil reports whether the target has a stencil attachment.
func (t RenderTarget) HasStencil() bool {
	return t.Stencil != nil && t.Stencil.Texture != nil
}

// SampleCount returns the sample count of the color texture.
func (t RenderTarget) SampleCount() int {
	if t.Color.Texture == nil {
		return 0
	}
	return t.Color.Texture.Descriptor().SampleCount
}

// RenderTargetTexture returns the texture that holds the pass result:
// the resolve texture when there is one, the color texture otherwise.
func (t RenderTarget) RenderTargetTexture() Texture {
	if t.Color.ResolveTexture != nil {
		return t.Color.ResolveTexture
	}
	return t.Color.Texture
}

// Validate reports whether the target can back a render pass.
func (t RenderTarget) Validate() error {
	if t.Color.Texture == nil {
		return fmt.Errorf("%w: missing color texture", ErrInvalidRenderTarget)
	}
	size := t.Color.Texture.Size()
	if size.IsEmpty() {
		return fmt.Errorf("%w: empty color texture", ErrInvalidRenderTarget)
	}
	if r := t.Color.ResolveTexture; r != nil && r.Size() != size {
		return fmt.Errorf("%w: resolve size %v != color size %v", ErrInvalidRenderTarget, r.Size(), size)
	}
	if t.Color.StoreAction.Resolves() && t.Color.ResolveTexture == nil {
		return fmt.Errorf("%w: resolve store without resolve texture", ErrInvalidRenderTarget)
	}
	if t.HasStencil() && t.Stencil.Texture.Size() != size {
		return fmt.Errorf("%w: stencil size %v != color size %v", ErrInvalidRenderTarget, t.Stencil.Texture.Size(), size)
	}
	return nil
}

// ClearColor converts a premultiplied color to the attachment clear value.
func ClearColor(c geom.Color) gputypes.Color {
	return gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ColorFromClear converts an attachment clear value back to a
// premultiplied color.
func ColorFromClear(c gputypes.Color) geom.Color {
	return geom.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
