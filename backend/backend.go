// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/compositor/gpu"
)

// Backend names.
const (
	// Software is the CPU reference backend in backend/software.
	Software = "software"
)

var (
	// ErrBackendNotAvailable is returned when no backend with the requested
	// name is registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Config holds the device features a caller asks for. Backends enable what
// they can and report the result through gpu.Context.Capabilities.
type Config struct {
	// MSAA requests multisampled offscreen targets.
	MSAA bool
	// FramebufferFetch requests shader access to the destination pixel.
	FramebufferFetch bool
	// ReadFromResolve requests loading a pass from its resolve texture.
	ReadFromResolve bool
	// Device is the host device, if any.
	Device gpu.DeviceProvider
	// Workers is the number of goroutines a CPU backend shades with.
	Workers int
}

// Factory creates a context for cfg.
type Factory func(cfg Config) (gpu.Context, error)
