// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/gpu"
)

// clipRecorder keeps the clip entities that shape the current stencil so
// they can be replayed into a render pass that starts with a cleared
// stencil.
type clipRecorder struct {
	entities []*entity.Entity
}

// record tracks a rendered clip entity. A restore to depth d forgets every
// clip pushed at depth d or above.
func (c *clipRecorder) record(e *entity.Entity, t entity.ClipCoverageType) {
	switch t {
	case entity.ClipAppend:
		c.entities = append(c.entities, e.Clone())
	case entity.ClipRestore:
		n := len(c.entities)
		for n > 0 && c.entities[n-1].ClipDepth >= e.ClipDepth {
			n--
		}
		c.entities = c.entities[:n]
	}
}

// replay renders the recorded clips into pass in order.
func (c *clipRecorder) replay(r *entity.ContentContext, pass gpu.RenderPass) error {
	for _, e := range c.entities {
		if err := e.Render(r, pass); err != nil {
			return err
		}
	}
	return nil
}

// count returns the number of recorded clips.
func (c *clipRecorder) count() int { return len(c.entities) }
