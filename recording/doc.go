// Package recording provides a gpu.Context that records the work submitted
// through it.
//
// A Context wraps another gpu.Context and forwards every call. Alongside, it
// captures each command buffer, render pass and blit pass as typed records,
// with the draws of every render pass in encoding order. Tests use the
// records to check pass counts, load actions and clear colors, the stencil
// references of clip draws, and the order of commands.
//
// # Usage
//
//	rec := recording.New(software.NewContext())
//	// ... render with rec as the gpu.Context ...
//	r := rec.Recording()
//	fmt.Println(len(r.RenderPasses()), r.CommandCount())
//
// # Failure injection
//
// FailCommandBufferAfter and FailTextureAllocationAfter make the n+1th
// command buffer or texture allocation fail with ErrInjected, so callers can
// verify how failures propagate.
//
// A Context is not safe for concurrent use.
package recording
