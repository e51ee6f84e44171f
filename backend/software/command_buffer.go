// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

type commandBuffer struct {
	ctx       *Context
	label     string
	passes    []func() error
	open      int
	submitted bool
}

func (b *commandBuffer) SetLabel(label string) { b.label = label }

func (b *commandBuffer) CreateRenderPass(target gpu.RenderTarget) (gpu.RenderPass, error) {
	if b.submitted {
		return nil, gpu.ErrEncoded
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	color, ok := target.Color.Texture.(*Texture)
	if !ok {
		return nil, fmt.Errorf("%w: color texture from another backend", gpu.ErrInvalidRenderTarget)
	}
	p := &renderPass{buffer: b, target: target, color: color}
	if r := target.Color.ResolveTexture; r != nil {
		if p.resolve, ok = r.(*Texture); !ok {
			return nil, fmt.Errorf("%w: resolve texture from another backend", gpu.ErrInvalidRenderTarget)
		}
	}
	if target.HasStencil() {
		if p.stencil, ok = target.Stencil.Texture.(*Texture); !ok || p.stencil.stencil == nil {
			return nil, fmt.Errorf("%w: stencil attachment is not a stencil texture", gpu.ErrInvalidRenderTarget)
		}
	}
	b.open++
	return p, nil
}

func (b *commandBuffer) CreateBlitPass() (gpu.BlitPass, error) {
	if b.submitted {
		return nil, gpu.ErrEncoded
	}
	b.open++
	return &blitPass{buffer: b}, nil
}

func (b *commandBuffer) Submit() error {
	if b.submitted {
		return gpu.ErrEncoded
	}
	b.submitted = true
	if b.open > 0 {
		compositor.Logger().Warn("command buffer submitted with passes still open", "label", b.label, "open", b.open)
	}
	b.ctx.stats.CommandBuffers++
	for _, run := range b.passes {
		if err := run(); err != nil {
			return fmt.Errorf("%s: %w", b.label, err)
		}
	}
	return nil
}

type blitPass struct {
	buffer  *commandBuffer
	label   string
	ops     []func() error
	encoded bool
}

func (p *blitPass) SetLabel(label string) { p.label = label }

func (p *blitPass) AddCopy(src, dst gpu.Texture) error {
	if p.encoded {
		return gpu.ErrEncoded
	}
	if !p.buffer.ctx.opts.caps.SupportsTextureToTextureBlits {
		return fmt.Errorf("%w: texture to texture blit", gpu.ErrUnsupported)
	}
	s, ok1 := src.(*Texture)
	d, ok2 := dst.(*Texture)
	if !ok1 || !ok2 || s.levels == nil || d.levels == nil {
		return fmt.Errorf("%w: blit between foreign or stencil textures", gpu.ErrUnsupported)
	}
	p.ops = append(p.ops, func() error {
		d.copyFrom(s)
		return nil
	})
	return nil
}

func (p *blitPass) GenerateMipmap(tex gpu.Texture) error {
	if p.encoded {
		return gpu.ErrEncoded
	}
	t, ok := tex.(*Texture)
	if !ok || t.levels == nil {
		return fmt.Errorf("%w: mipmap of foreign or stencil texture", gpu.ErrUnsupported)
	}
	p.ops = append(p.ops, func() error {
		t.generateMipmaps()
		return nil
	})
	return nil
}

func (p *blitPass) EncodeCommands() error {
	if p.encoded {
		return gpu.ErrEncoded
	}
	p.encoded = true
	p.buffer.open--
	ops := p.ops
	ctx := p.buffer.ctx
	p.buffer.passes = append(p.buffer.passes, func() error {
		ctx.stats.BlitPasses++
		for _, op := range ops {
			if err := op(); err != nil {
				return err
			}
		}
		return nil
	})
	return nil
}

// command is one recorded draw.
type command struct {
	label    string
	pipeline gpu.PipelineDescriptor
	ref      uint32
	vertices gpu.VertexBuffer
	bindings gpu.Bindings
}

type renderPass struct {
	buffer  *commandBuffer
	label   string
	target  gpu.RenderTarget
	color   *Texture
	resolve *Texture
	stencil *Texture

	pipeline *gpu.PipelineDescriptor
	ref      uint32
	vertices gpu.VertexBuffer
	bindings gpu.Bindings
	cmdLabel string
	commands []command
	encoded  bool
}

func (p *renderPass) SetLabel(label string)               { p.label = label }
func (p *renderPass) RenderTarget() gpu.RenderTarget      { return p.target }
func (p *renderPass) RenderTargetSize() geom.ISize        { return p.target.Size() }
func (p *renderPass) SetCommandLabel(label string)        { p.cmdLabel = label }
func (p *renderPass) SetStencilReference(ref uint32)      { p.ref = ref }
func (p *renderPass) SetVertexBuffer(vb gpu.VertexBuffer) { p.vertices = vb }
func (p *renderPass) Bind(b gpu.Bindings)                 { p.bindings = b }

func (p *renderPass) SetPipeline(desc gpu.PipelineDescriptor) {
	p.pipeline = &desc
}

func (p *renderPass) Draw() error {
	if p.encoded {
		return gpu.ErrEncoded
	}
	if p.pipeline == nil {
		return gpu.ErrNoPipeline
	}
	p.commands = append(p.commands, command{
		label:    p.cmdLabel,
		pipeline: *p.pipeline,
		ref:      p.ref,
		vertices: p.vertices,
		bindings: p.bindings,
	})
	p.cmdLabel = ""
	return nil
}

func (p *renderPass) EncodeCommands() error {
	if p.encoded {
		return gpu.ErrEncoded
	}
	p.encoded = true
	p.buffer.open--
	p.buffer.passes = append(p.buffer.passes, p.execute)
	return nil
}

var (
	_ gpu.CommandBuffer = (*commandBuffer)(nil)
	_ gpu.RenderPass    = (*renderPass)(nil)
	_ gpu.BlitPass      = (*blitPass)(nil)
)
