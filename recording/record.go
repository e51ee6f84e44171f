package recording

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/gputypes"
)

// PassType identifies the kind of a recorded pass.
type PassType uint8

const (
	PassRender PassType = iota // Render pass
	PassBlit                   // Blit pass
)

var passTypeNames = [...]string{
	PassRender: "Render",
	PassBlit:   "Blit",
}

// String returns the string representation of a PassType.
func (t PassType) String() string {
	if int(t) < len(passTypeNames) {
		return passTypeNames[t]
	}
	return "Unknown"
}

// BlitOp identifies a recorded blit operation.
type BlitOp uint8

const (
	BlitCopy           BlitOp = iota // Texture to texture copy
	BlitGenerateMipmap               // Mip chain generation
)

// Buffer is a recorded command buffer.
type Buffer struct {
	Label     string
	Passes    []*Pass
	Submitted bool
}

// Pass is a recorded render or blit pass.
type Pass struct {
	Type  PassType
	Label string

	// Render passes only.
	Target      gpu.RenderTarget
	Size        geom.ISize
	SampleCount int
	HasStencil  bool
	ColorLoad   gpu.LoadAction
	ColorStore  gpu.StoreAction
	StencilLoad gpu.LoadAction
	ClearColor  geom.Color
	Commands    []Command

	// Blit passes only.
	Blits []Blit

	Encoded bool
}

// LoadOp returns the WebGPU load op of the color attachment.
func (p *Pass) LoadOp() gputypes.LoadOp { return p.ColorLoad.LoadOp() }

// StoreOp returns the WebGPU store op of the color attachment.
func (p *Pass) StoreOp() gputypes.StoreOp { return p.ColorStore.StoreOp() }

// Command is a recorded draw.
type Command struct {
	Label       string
	Pipeline    gpu.PipelineKind
	BlendMode   geom.BlendMode
	StencilMode gpu.StencilMode
	StencilRef  uint32
	VertexCount int
	// Color is the premultiplied fragment color of the draw.
	Color geom.Color
}

// Blit is a recorded blit operation.
type Blit struct {
	Op       BlitOp
	Src, Dst gpu.Texture
}

// Recording is a snapshot of everything recorded so far.
type Recording struct {
	Buffers []*Buffer
}

// RenderPasses returns the render passes of all buffers in encoding order.
func (r *Recording) RenderPasses() []*Pass {
	return r.passes(PassRender)
}

// BlitPasses returns the blit passes of all buffers in encoding order.
func (r *Recording) BlitPasses() []*Pass {
	return r.passes(PassBlit)
}

func (r *Recording) passes(t PassType) []*Pass {
	var out []*Pass
	for _, b := range r.Buffers {
		for _, p := range b.Passes {
			if p.Type == t {
				out = append(out, p)
			}
		}
	}
	return out
}

// Commands returns every draw of every render pass in order.
func (r *Recording) Commands() []Command {
	var out []Command
	for _, p := range r.RenderPasses() {
		out = append(out, p.Commands...)
	}
	return out
}

// CommandCount returns the number of recorded draws.
func (r *Recording) CommandCount() int {
	n := 0
	for _, p := range r.RenderPasses() {
		n += len(p.Commands)
	}
	return n
}

// CommandsWith returns the draws that use pipeline kind k.
func (r *Recording) CommandsWith(k gpu.PipelineKind) []Command {
	var out []Command
	for _, c := range r.Commands() {
		if c.Pipeline == k {
			out = append(out, c)
		}
	}
	return out
}
