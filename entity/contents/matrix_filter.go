package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// matrixFilter transforms its input about the origin of its own space.
type matrixFilter struct {
	passThroughOp
	matrix  geom.Matrix
	sampler gpu.SamplerDescriptor
}

// NewMatrix returns input transformed by m.
func NewMatrix(input FilterInput, m geom.Matrix, sampler gpu.SamplerDescriptor) *FilterContents {
	return newFilter(&matrixFilter{matrix: m, sampler: sampler}, input)
}

func (m *matrixFilter) label() string { return "Matrix" }

// space returns the transform m is applied in.
func (m *matrixFilter) space(f *FilterContents, e *entity.Entity) geom.Matrix {
	if f.mode == RenderingSubpass {
		return f.effectTransform
	}
	return InputTransform(f.inputs[0], e)
}

func (m *matrixFilter) conjugate(space geom.Matrix) geom.Matrix {
	if space.Determinant() == 0 {
		return m.matrix
	}
	return space.Multiply(m.matrix).Multiply(space.Invert())
}

func (m *matrixFilter) filterCoverage(f *FilterContents, e *entity.Entity) (geom.Rect, bool) {
	if len(f.inputs) == 0 {
		return geom.Rect{}, false
	}
	cov, ok := f.inputs[0].Coverage(e)
	if !ok {
		return geom.Rect{}, false
	}
	return cov.TransformBounds(m.conjugate(m.space(f, e))), true
}

func (m *matrixFilter) isTranslationOnly(f *FilterContents) bool {
	return m.matrix.Basis().IsIdentity() && m.passThroughOp.isTranslationOnly(f)
}

func (m *matrixFilter) filterSourceCoverage(f *FilterContents, effect geom.Matrix, outputLimit geom.Rect) (geom.Rect, bool) {
	t := m.conjugate(effect)
	if t.Determinant() == 0 {
		return geom.Rect{}, false
	}
	return outputLimit.TransformBounds(t.Invert()), true
}

func (m *matrixFilter) render(f *FilterContents, r *entity.ContentContext, e *entity.Entity, _ geom.Rect, _ *geom.Rect) (*entity.Entity, error) {
	if len(f.inputs) == 0 {
		return nil, nil
	}
	snap, err := f.inputs[0].Snapshot(r, e, SnapshotOptions{Label: "Matrix"})
	if err != nil || snap == nil {
		return nil, err
	}
	space := e.Transform
	if f.mode == RenderingSubpass {
		space = f.effectTransform
	}
	snap.Transform = m.conjugate(space).Multiply(snap.Transform)
	snap.Sampler = m.sampler
	return EntityFromSnapshot(snap, e.BlendMode, e.ClipDepth), nil
}
