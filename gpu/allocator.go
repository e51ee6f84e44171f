// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// RenderTargetConfig holds the parameters of an offscreen target. Equal
// configs produce interchangeable targets.
type RenderTargetConfig struct {
	Size        geom.ISize
	MipCount    int
	SampleCount int
	ColorFormat gputypes.TextureFormat
	HasStencil  bool
}

// RenderTargetAllocator creates offscreen render targets. Start and End
// bracket one frame so implementations can recycle targets.
type RenderTargetAllocator interface {
	Start()
	End()
	CreateOffscreen(ctx Context, label string, size geom.ISize, mipCount int, stencil bool) (RenderTarget, error)
	CreateOffscreenMSAA(ctx Context, label string, size geom.ISize, mipCount int, stencil bool) (RenderTarget, error)
}

// BasicAllocator allocates a fresh target on every call.
type BasicAllocator struct{}

// Start implements RenderTargetAllocator.
func (BasicAllocator) Start() {}

// End implements RenderTargetAllocator.
func (BasicAllocator) End() {}

// CreateOffscreen implements RenderTargetAllocator.
func (BasicAllocator) CreateOffscreen(ctx Context, label string, size geom.ISize, mipCount int, stencil bool) (RenderTarget, error) {
	return CreateRenderTarget(ctx, label, RenderTargetConfig{
		Size:        size,
		MipCount:    mipCount,
		SampleCount: 1,
		ColorFormat: ctx.Capabilities().DefaultColorFormat,
		HasStencil:  stencil,
	})
}

// CreateOffscreenMSAA implements RenderTargetAllocator.
func (BasicAllocator) CreateOffscreenMSAA(ctx Context, label string, size geom.ISize, mipCount int, stencil bool) (RenderTarget, error) {
	return CreateRenderTarget(ctx, label, RenderTargetConfig{
		Size:        size,
		MipCount:    mipCount,
		SampleCount: 4,
		ColorFormat: ctx.Capabilities().DefaultColorFormat,
		HasStencil:  stencil,
	})
}

// CreateRenderTarget allocates the textures for cfg. A sample count above
// one creates a transient multisample texture resolved into a single-sample
// texture with cfg.MipCount levels.
func CreateRenderTarget(ctx Context, label string, cfg RenderTargetConfig) (RenderTarget, error) {
	if cfg.MipCount < 1 {
		cfg.MipCount = 1
	}
	if cfg.SampleCount < 1 {
		cfg.SampleCount = 1
	}
	caps := ctx.Capabilities()
	if cfg.ColorFormat == gputypes.TextureFormatUndefined {
		cfg.ColorFormat = caps.DefaultColorFormat
	}
	if m := caps.MaxTextureSize; m > 0 && (cfg.Size.Width > m || cfg.Size.Height > m) {
		return RenderTarget{}, fmt.Errorf("%w: %s %dx%d exceeds max texture size %d",
			ErrAllocation, label, cfg.Size.Width, cfg.Size.Height, m)
	}

	alloc := ctx.Allocator()
	msaa := cfg.SampleCount > 1

	resolveDesc := TextureDescriptor{
		Label:       label,
		Size:        cfg.Size,
		Format:      cfg.ColorFormat,
		MipCount:    cfg.MipCount,
		SampleCount: 1,
		StorageMode: StorageDevicePrivate,
		Usage:       UsageRenderTarget | UsageShaderRead | UsageCopySrc | UsageCopyDst,
	}

	var target RenderTarget
	if msaa {
		msDesc := resolveDesc
		msDesc.Label = label + " MSAA"
		msDesc.MipCount = 1
		msDesc.SampleCount = cfg.SampleCount
		msDesc.StorageMode = StorageDeviceTransient
		msDesc.Usage = UsageRenderTarget
		ms, err := alloc.CreateTexture(msDesc)
		if err != nil {
			return RenderTarget{}, fmt.Errorf("%s color: %w", label, err)
		}
		resolve, err := alloc.CreateTexture(resolveDesc)
		if err != nil {
			return RenderTarget{}, fmt.Errorf("%s resolve: %w", label, err)
		}
		target.Color = ColorAttachment{
			Texture:        ms,
			ResolveTexture: resolve,
			LoadAction:     LoadClear,
			StoreAction:    StoreMultisampleResolve,
		}
	} else {
		tex, err := alloc.CreateTexture(resolveDesc)
		if err != nil {
			return RenderTarget{}, fmt.Errorf("%s color: %w", label, err)
		}
		target.Color = ColorAttachment{
			Texture:     tex,
			LoadAction:  LoadClear,
			StoreAction: StoreStore,
		}
	}

	if cfg.HasStencil {
		st, err := alloc.CreateTexture(TextureDescriptor{
			Label:       label + " Stencil",
			Size:        cfg.Size,
			Format:      caps.DefaultStencilFormat,
			MipCount:    1,
			SampleCount: cfg.SampleCount,
			StorageMode: StorageDeviceTransient,
			Usage:       UsageRenderTarget,
		})
		if err != nil {
			return RenderTarget{}, fmt.Errorf("%s stencil: %w", label, err)
		}
		target.Stencil = &StencilAttachment{
			Texture:     st,
			LoadAction:  LoadClear,
			StoreAction: StoreDontCare,
		}
	}
	return target, nil
}

// ConfigOf returns the config that produced t.
func ConfigOf(t RenderTarget) RenderTargetConfig {
	res := t.RenderTargetTexture()
	if res == nil {
		return RenderTargetConfig{}
	}
	d := res.Descriptor()
	return RenderTargetConfig{
		Size:        d.Size,
		MipCount:    d.MipCount,
		SampleCount: t.SampleCount(),
		ColorFormat: d.Format,
		HasStencil:  t.HasStencil(),
	}
}
