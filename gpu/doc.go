// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu defines the device abstraction the compositor renders through.
//
// A Context creates command buffers; a command buffer creates render passes
// and blit passes over textures allocated from the context's Allocator.
// Render passes draw with a PipelineDescriptor that names a fixed pipeline
// kind plus the blend and stencil state, a VertexBuffer of triangles in
// local coordinates, and Bindings with the frame and fragment uniforms.
//
// Backends implement these interfaces. backend/software is the reference
// implementation; the recording package wraps any Context to observe the
// commands issued against it.
//
// # Host integration
//
// Host frameworks hand their device to a backend through
// gpucontext.DeviceProvider (aliased here as DeviceProvider). The compositor
// never creates devices itself.
//
// # Render targets
//
// RenderTarget is a value describing color attachment 0 and an optional
// combined depth/stencil attachment. The RenderTargetAllocator creates
// offscreen targets; RenderTargetCache recycles them across frames.
package gpu
