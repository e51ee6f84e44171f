package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// procContents draws and measures itself with closures.
type procContents struct {
	entity.Base
	render   func(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error
	coverage func(e *entity.Entity) (geom.Rect, bool)
}

func (c *procContents) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	return c.render(r, e, pass)
}

func (c *procContents) Coverage(e *entity.Entity) (geom.Rect, bool) {
	return c.coverage(e)
}
