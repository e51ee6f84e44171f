// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceProvider is the host-side device handle. It is an alias for
// gpucontext.DeviceProvider so any gogpu host can drive a backend.
type DeviceProvider = gpucontext.DeviceProvider

// BackendType identifies the implementation behind a Context.
type BackendType uint8

const (
	BackendSoftware BackendType = iota
	BackendMetal
	BackendVulkan
	BackendOpenGLES
)

// String returns the backend name.
func (b BackendType) String() string {
	switch b {
	case BackendSoftware:
		return "Software"
	case BackendMetal:
		return "Metal"
	case BackendVulkan:
		return "Vulkan"
	case BackendOpenGLES:
		return "OpenGLES"
	default:
		return "Unknown"
	}
}

// Capabilities describes what a device can do. The renderer consults these
// when choosing MSAA, blit paths and whether advanced blends need the
// backdrop as a texture.
type Capabilities struct {
	// SupportsOffscreenMSAA allows multisampled offscreen targets.
	SupportsOffscreenMSAA bool

	// SupportsTextureToTextureBlits allows BlitPass.AddCopy.
	SupportsTextureToTextureBlits bool

	// SupportsFramebufferFetch lets shaders read the destination pixel, so
	// advanced blends do not need a backdrop texture.
	SupportsFramebufferFetch bool

	// SupportsReadFromResolve lets a pass load from its resolve texture,
	// which avoids a second backdrop texture when flipping.
	SupportsReadFromResolve bool

	// DefaultColorFormat is the format for offscreen color targets.
	DefaultColorFormat gputypes.TextureFormat

	// DefaultStencilFormat is the format for stencil attachments.
	DefaultStencilFormat gputypes.TextureFormat

	// MaxTextureSize bounds texture width and height. Zero means unbounded.
	MaxTextureSize int
}

// DefaultCapabilities returns single-sampled capabilities with RGBA8
// color and combined depth/stencil formats.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		SupportsTextureToTextureBlits: true,
		DefaultColorFormat:            gputypes.TextureFormatRGBA8Unorm,
		DefaultStencilFormat:          gputypes.TextureFormatDepth24PlusStencil8,
	}
}

// Allocator creates textures.
type Allocator interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
}

// Context is a device the compositor renders with.
type Context interface {
	BackendType() BackendType
	Capabilities() Capabilities
	Allocator() Allocator
	CreateCommandBuffer() (CommandBuffer, error)
}
