// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import "errors"

var (
	// ErrRenderTarget is returned when a render target has no color
	// texture or lacks the stencil attachment the pass needs.
	ErrRenderTarget = errors.New("pass: invalid render target")

	// ErrCommandBuffer is returned when a command buffer or blit pass cannot
	// be created or submitted.
	ErrCommandBuffer = errors.New("pass: command buffer failed")

	// ErrSubpassContents is returned when a delegate produced no contents
	// for a finished subpass target.
	ErrSubpassContents = errors.New("pass: missing subpass contents")

	// ErrCollapsed is returned when a collapsed pass context is asked to end
	// the render pass it shares with its parent.
	ErrCollapsed = errors.New("pass: pass context is collapsed")
)
