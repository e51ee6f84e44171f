package contents

import (
	"math"

	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

// Snapshot is a texture positioned in pass coordinates.
type Snapshot struct {
	Texture gpu.Texture
	// Transform maps texture pixels to pass coordinates.
	Transform geom.Matrix
	Sampler   gpu.SamplerDescriptor
	Opacity   float64
}

// Coverage returns the area of the texture in pass coordinates.
func (s *Snapshot) Coverage() (geom.Rect, bool) {
	if s == nil || s.Texture == nil {
		return geom.Rect{}, false
	}
	return geom.MakeSize(s.Texture.Size()).TransformBounds(s.Transform), true
}

// UVTransform maps pass coordinates to the normalized texture coordinates
// of the snapshot.
func (s *Snapshot) UVTransform() geom.Matrix {
	size := s.Texture.Size()
	inv := geom.Identity()
	if s.Transform.Determinant() != 0 {
		inv = s.Transform.Invert()
	}
	return geom.Scale(1/float64(size.Width), 1/float64(size.Height)).Multiply(inv)
}

// SnapshotOptions control how contents are rendered into a snapshot.
type SnapshotOptions struct {
	// CoverageLimit bounds the snapshot in pass coordinates.
	CoverageLimit *geom.Rect
	// Sampler overrides the sampler stored in the snapshot.
	Sampler  *gpu.SamplerDescriptor
	MSAA     bool
	MipCount int
	Label    string
}

// Snapshotter is implemented by contents with a cheaper snapshot than
// rendering themselves offscreen.
type Snapshotter interface {
	RenderToSnapshot(r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error)
}

// RenderToSnapshot renders c as drawn by e into a texture. It returns nil
// without an error when c covers nothing within the limit.
func RenderToSnapshot(c entity.Contents, r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error) {
	if s, ok := c.(Snapshotter); ok {
		return s.RenderToSnapshot(r, e, opts)
	}
	return renderToSnapshot(c, r, e, opts)
}

// renderToSnapshot draws c into an offscreen target sized to its coverage,
// padded by one pixel so sampling at the edges reads transparent black.
func renderToSnapshot(c entity.Contents, r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error) {
	sub := e.Clone()
	sub.Contents = c
	coverage, ok := sub.Coverage()
	if !ok {
		return nil, nil
	}
	coverage = coverage.Expand(1, 1)
	if opts.CoverageLimit != nil {
		if coverage, ok = coverage.Intersection(*opts.CoverageLimit); !ok {
			return nil, nil
		}
	}

	size := geom.ISize{
		Width:  int(math.Ceil(coverage.Width())),
		Height: int(math.Ceil(coverage.Height())),
	}
	if size.IsEmpty() {
		return nil, nil
	}
	label := opts.Label
	if label == "" {
		label = "Snapshot"
	}
	mip := max(1, min(opts.MipCount, size.MipCount()))

	target, err := r.MakeSubpass(label, size, func(r *entity.ContentContext, pass gpu.RenderPass) error {
		inner := entity.New(c)
		inner.Transform = geom.Translate(-coverage.MinX, -coverage.MinY).Multiply(e.Transform)
		return c.Render(r, inner, pass)
	}, opts.MSAA, mip)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Texture:   target.RenderTargetTexture(),
		Transform: geom.Translate(coverage.MinX, coverage.MinY),
		Opacity:   1,
	}
	if opts.Sampler != nil {
		s.Sampler = *opts.Sampler
	}
	return s, nil
}

// EntityFromSnapshot returns an entity drawing the snapshot texture where
// the snapshot lies.
func EntityFromSnapshot(s *Snapshot, mode geom.BlendMode, clipDepth uint32) *entity.Entity {
	full := geom.MakeSize(s.Texture.Size())
	t := NewTexture(s.Texture, full)
	t.SetSampler(s.Sampler)
	t.SetOpacity(s.Opacity)

	e := entity.New(t)
	e.BlendMode = mode
	e.ClipDepth = clipDepth
	e.Transform = s.Transform
	return e
}
