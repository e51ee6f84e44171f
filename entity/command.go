package entity

import (
	"fmt"

	"github.com/gogpu/compositor/gpu"
)

// Command is one draw.
type Command struct {
	Label            string
	Pipeline         gpu.PipelineDescriptor
	StencilReference uint32
	Vertices         gpu.VertexBuffer
	Bindings         gpu.Bindings
}

// Encode records c into pass.
func (c Command) Encode(pass gpu.RenderPass) error {
	pass.SetCommandLabel(c.Label)
	pass.SetPipeline(c.Pipeline)
	pass.SetStencilReference(c.StencilReference)
	pass.SetVertexBuffer(c.Vertices)
	pass.Bind(c.Bindings)
	if err := pass.Draw(); err != nil {
		return fmt.Errorf("%s: %w", c.Label, err)
	}
	return nil
}
