// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pass

import "github.com/gogpu/compositor/entity"

// Element is one item of a pass: either an entity or a child pass.
type Element struct {
	entity *entity.Entity
	pass   *EntityPass
}

// EntityElement returns an element holding e.
func EntityElement(e *entity.Entity) Element { return Element{entity: e} }

// SubpassElement returns an element holding p.
func SubpassElement(p *EntityPass) Element { return Element{pass: p} }

// Entity returns the entity, or nil when the element is a subpass.
func (el Element) Entity() *entity.Entity { return el.entity }

// Subpass returns the child pass, or nil when the element is an entity.
func (el Element) Subpass() *EntityPass { return el.pass }

// IsSubpass reports whether the element is a child pass.
func (el Element) IsSubpass() bool { return el.pass != nil }
