// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// StorageMode says where texture memory lives.
type StorageMode uint8

const (
	// StorageDevicePrivate is device memory the host cannot read.
	StorageDevicePrivate StorageMode = iota
	// StorageHostVisible is memory the host can map and read.
	StorageHostVisible
	// StorageDeviceTransient is tile memory that never leaves the pass,
	// used for multisample attachments that are resolved.
	StorageDeviceTransient
)

// Texture usage flags used by the compositor.
var (
	UsageRenderTarget = gputypes.TextureUsageRenderAttachment
	UsageShaderRead   = gputypes.TextureUsageTextureBinding
	UsageCopySrc      = gputypes.TextureUsageCopySrc
	UsageCopyDst      = gputypes.TextureUsageCopyDst
)

// TextureDescriptor describes a texture to allocate.
type TextureDescriptor struct {
	Label       string
	Size        geom.ISize
	Format      gputypes.TextureFormat
	MipCount    int
	SampleCount int
	StorageMode StorageMode
	Usage       gputypes.TextureUsage
}

// Validate reports why desc cannot be allocated, or nil.
func (d TextureDescriptor) Validate() error {
	switch {
	case d.Size.IsEmpty():
		return fmt.Errorf("%w: empty size %dx%d", ErrInvalidDescriptor, d.Size.Width, d.Size.Height)
	case d.Format == gputypes.TextureFormatUndefined:
		return fmt.Errorf("%w: undefined format", ErrInvalidDescriptor)
	case d.MipCount < 1:
		return fmt.Errorf("%w: mip count %d", ErrInvalidDescriptor, d.MipCount)
	case d.SampleCount < 1:
		return fmt.Errorf("%w: sample count %d", ErrInvalidDescriptor, d.SampleCount)
	}
	return nil
}

// Texture is a device image.
type Texture interface {
	Descriptor() TextureDescriptor
	Size() geom.ISize

	// SetContents uploads mip level 0. For RGBA8 formats data holds
	// premultiplied 8-bit RGBA rows; for R8 formats one byte per pixel.
	SetContents(data []byte) error
}

// IsStencilFormat reports whether f carries a stencil aspect.
func IsStencilFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatDepth24PlusStencil8
}

// BytesPerPixel returns the size of one texel of the color formats the
// compositor uploads, or 0 for formats it does not upload.
func BytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 0
	}
}
