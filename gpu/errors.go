// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "errors"

var (
	// ErrAllocation is returned when a texture cannot be allocated.
	ErrAllocation = errors.New("gpu: texture allocation failed")

	// ErrInvalidDescriptor is returned for textures with an empty size, an
	// unknown format or a zero mip or sample count.
	ErrInvalidDescriptor = errors.New("gpu: invalid texture descriptor")

	// ErrInvalidRenderTarget is returned when a render pass is created for a
	// target without a color texture or with mismatched attachment sizes.
	ErrInvalidRenderTarget = errors.New("gpu: invalid render target")

	// ErrCommandBuffer is returned when a command buffer cannot be created.
	ErrCommandBuffer = errors.New("gpu: command buffer creation failed")

	// ErrEncoded is returned when commands are added to a pass or buffer
	// that was already encoded or submitted.
	ErrEncoded = errors.New("gpu: already encoded")

	// ErrNoPipeline is returned by Draw when no pipeline was set.
	ErrNoPipeline = errors.New("gpu: draw without pipeline")

	// ErrUnsupported is returned for operations the backend cannot perform,
	// such as texture-to-texture blits on devices without them.
	ErrUnsupported = errors.New("gpu: operation not supported")
)
