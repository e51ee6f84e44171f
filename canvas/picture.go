package canvas

import (
	"fmt"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/pass"
)

// Picture is a finished recording. It may be rendered any number of times.
type Picture struct {
	pass *pass.EntityPass
}

// Pass returns the root pass of the recording.
func (p *Picture) Pass() *pass.EntityPass { return p.pass }

// Render draws the picture into target.
func (p *Picture) Render(r *entity.ContentContext, target gpu.RenderTarget) error {
	return p.pass.Render(r, target)
}

// ToImage renders the picture into a new texture of the given size.
func (p *Picture) ToImage(r *entity.ContentContext, size geom.ISize) (*Image, error) {
	if size.IsEmpty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, size.Width, size.Height)
	}
	samples := 1
	if r.Capabilities().SupportsOffscreenMSAA {
		samples = 4
	}
	target, err := gpu.CreateRenderTarget(r.Context(), "Picture Snapshot", gpu.RenderTargetConfig{
		Size:        size,
		MipCount:    p.pass.RequiredMipCount(),
		SampleCount: samples,
		HasStencil:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("canvas: snapshot target: %w", err)
	}
	if err := p.Render(r, target); err != nil {
		return nil, fmt.Errorf("canvas: render snapshot: %w", err)
	}
	return NewImage(target.RenderTargetTexture()), nil
}

// Image is a texture that can be drawn onto a canvas.
type Image struct {
	texture gpu.Texture
}

// NewImage wraps tex.
func NewImage(tex gpu.Texture) *Image { return &Image{texture: tex} }

// Texture returns the wrapped texture.
func (i *Image) Texture() gpu.Texture { return i.texture }

// Size returns the size of the texture.
func (i *Image) Size() geom.ISize { return i.texture.Size() }
