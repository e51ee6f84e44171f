// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/gputypes"
)

// Option configures a Context.
type Option func(*options)

type options struct {
	caps    gpu.Capabilities
	backend gpu.BackendType
	device  gpu.DeviceProvider
	workers int
}

func defaultOptions() options {
	return options{
		caps:    gpu.DefaultCapabilities(),
		backend: gpu.BackendSoftware,
	}
}

// WithMSAA enables multisampled offscreen targets.
func WithMSAA(enabled bool) Option {
	return func(o *options) {
		o.caps.SupportsOffscreenMSAA = enabled
	}
}

// WithFramebufferFetch lets pipelines read the destination pixel.
func WithFramebufferFetch(enabled bool) Option {
	return func(o *options) {
		o.caps.SupportsFramebufferFetch = enabled
	}
}

// WithTextureToTextureBlits enables BlitPass.AddCopy. It is on by default.
func WithTextureToTextureBlits(enabled bool) Option {
	return func(o *options) {
		o.caps.SupportsTextureToTextureBlits = enabled
	}
}

// WithReadFromResolve lets a multisample pass load from its resolve texture.
func WithReadFromResolve(enabled bool) Option {
	return func(o *options) {
		o.caps.SupportsReadFromResolve = enabled
	}
}

// WithBackendType makes the context report b. Tests use this to exercise
// code paths that depend on the backend type.
func WithBackendType(b gpu.BackendType) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithDeviceProvider adopts the host's surface format as the default color
// format. A provider that reports an undefined format is ignored.
func WithDeviceProvider(p gpu.DeviceProvider) Option {
	return func(o *options) {
		o.device = p
		if p == nil {
			return
		}
		if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			o.caps.DefaultColorFormat = f
		}
	}
}

// WithMaxTextureSize bounds texture dimensions. Zero means unbounded.
func WithMaxTextureSize(n int) Option {
	return func(o *options) {
		o.caps.MaxTextureSize = n
	}
}

// WithWorkers shades draws in row bands on n goroutines. Values below two
// shade on the submitting goroutine. Runtime effects must then be safe for
// concurrent use.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
