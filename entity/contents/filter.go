package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/text"
)

// RenderingMode says which transform a filter works in.
type RenderingMode uint8

const (
	// RenderingDirect filters in the space of the drawing entity.
	RenderingDirect RenderingMode = iota
	// RenderingSubpass filters the texture of a finished subpass, whose
	// entity transform is already baked in. The effect transform then
	// stands for the transform of the layer.
	RenderingSubpass
)

// filterOp is the filter-specific part of FilterContents.
type filterOp interface {
	label() string
	filterCoverage(f *FilterContents, e *entity.Entity) (geom.Rect, bool)
	filterSourceCoverage(f *FilterContents, effect geom.Matrix, outputLimit geom.Rect) (geom.Rect, bool)
	isTranslationOnly(f *FilterContents) bool
	// render produces the filtered entity, or nil when nothing is visible.
	render(f *FilterContents, r *entity.ContentContext, e *entity.Entity, coverage geom.Rect, hint *geom.Rect) (*entity.Entity, error)
}

// passThroughOp supplies the defaults: coverage is the union of the
// inputs, and outputs map 1:1 to sources.
type passThroughOp struct{}

func (passThroughOp) filterCoverage(f *FilterContents, e *entity.Entity) (geom.Rect, bool) {
	return f.inputsCoverage(e)
}

func (passThroughOp) filterSourceCoverage(_ *FilterContents, _ geom.Matrix, outputLimit geom.Rect) (geom.Rect, bool) {
	return outputLimit, true
}

func (passThroughOp) isTranslationOnly(f *FilterContents) bool {
	for _, in := range f.inputs {
		if !in.IsTranslationOnly() {
			return false
		}
	}
	return true
}

// FilterContents draws the result of a filter applied to its inputs.
type FilterContents struct {
	entity.Base

	inputs          []FilterInput
	effectTransform geom.Matrix
	mode            RenderingMode
	op              filterOp
}

func newFilter(op filterOp, inputs ...FilterInput) *FilterContents {
	return &FilterContents{inputs: inputs, effectTransform: geom.Identity(), op: op}
}

// Inputs returns the filter inputs.
func (f *FilterContents) Inputs() []FilterInput { return f.inputs }

// Label returns the filter name.
func (f *FilterContents) Label() string { return f.op.label() }

// EffectTransform returns the transform the filter parameters are
// expressed in.
func (f *FilterContents) EffectTransform() geom.Matrix { return f.effectTransform }

// SetEffectTransform sets the effect transform of f and of nested filters.
func (f *FilterContents) SetEffectTransform(m geom.Matrix) {
	f.effectTransform = m
	for _, in := range f.inputs {
		if n := nestedFilter(in); n != nil {
			n.SetEffectTransform(m)
		}
	}
}

// RenderingMode returns the rendering mode.
func (f *FilterContents) RenderingMode() RenderingMode { return f.mode }

// SetRenderingMode sets the rendering mode of f and of nested filters.
func (f *FilterContents) SetRenderingMode(m RenderingMode) {
	f.mode = m
	for _, in := range f.inputs {
		if n := nestedFilter(in); n != nil {
			n.SetRenderingMode(m)
		}
	}
}

func nestedFilter(in FilterInput) *FilterContents {
	if c, ok := in.(*ContentsInput); ok {
		if f, ok := c.Contents.(*FilterContents); ok {
			return f
		}
	}
	return nil
}

func (f *FilterContents) inputsCoverage(e *entity.Entity) (geom.Rect, bool) {
	var acc *geom.Rect
	for _, in := range f.inputs {
		if r, ok := in.Coverage(e); ok {
			acc = geom.UnionOptional(acc, r)
		}
	}
	if acc == nil {
		return geom.Rect{}, false
	}
	return *acc, true
}

// Coverage implements entity.Contents.
func (f *FilterContents) Coverage(e *entity.Entity) (geom.Rect, bool) {
	r, ok := f.op.filterCoverage(f, e)
	if !ok || r.IsEmpty() {
		return geom.Rect{}, false
	}
	return r, true
}

// SourceCoverage returns the input area needed to produce outputLimit.
func (f *FilterContents) SourceCoverage(effect geom.Matrix, outputLimit geom.Rect) (geom.Rect, bool) {
	limit, ok := f.op.filterSourceCoverage(f, f.effectTransform, outputLimit)
	if !ok {
		return geom.Rect{}, false
	}
	var acc *geom.Rect
	for _, in := range f.inputs {
		r := limit
		if n := nestedFilter(in); n != nil {
			if r, ok = n.SourceCoverage(effect, limit); !ok {
				return geom.Rect{}, false
			}
		}
		acc = geom.UnionOptional(acc, r)
	}
	if acc == nil {
		return geom.Rect{}, false
	}
	return *acc, true
}

// IsTranslationOnly reports whether the filter moves its inputs without
// scaling or rotating them.
func (f *FilterContents) IsTranslationOnly() bool { return f.op.isTranslationOnly(f) }

// PopulateGlyphAtlas forwards to inputs that draw glyphs.
func (f *FilterContents) PopulateGlyphAtlas(atlas *text.LazyGlyphAtlas, scale float64) {
	for _, in := range f.inputs {
		if p, ok := in.(entity.GlyphAtlasPopulator); ok {
			p.PopulateGlyphAtlas(atlas, scale)
		}
	}
}

// Entity renders the filter and returns an entity drawing the result, or
// nil when the result is not visible within hint.
func (f *FilterContents) Entity(r *entity.ContentContext, e *entity.Entity, hint *geom.Rect) (*entity.Entity, error) {
	coverage, ok := f.Coverage(e)
	if !ok {
		return nil, nil
	}
	if hint != nil {
		if coverage, ok = coverage.Intersection(*hint); !ok {
			return nil, nil
		}
	}
	return f.op.render(f, r, e, coverage, hint)
}

// Render implements entity.Contents.
func (f *FilterContents) Render(r *entity.ContentContext, e *entity.Entity, pass gpu.RenderPass) error {
	res, err := f.Entity(r, e, f.CoverageHint())
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	res.ClipDepth = e.ClipDepth
	res.NewClipDepth = e.NewClipDepth
	return res.Render(r, pass)
}

// RenderToSnapshot implements Snapshotter.
func (f *FilterContents) RenderToSnapshot(r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error) {
	res, err := f.Entity(r, e, opts.CoverageLimit)
	if err != nil || res == nil {
		return nil, err
	}
	return RenderToSnapshot(res.Contents, r, res, opts)
}
