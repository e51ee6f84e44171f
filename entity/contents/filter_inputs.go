package contents

import (
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/text"
)

// FilterInput is something a filter reads: contents, a texture, or the
// placeholder of a texture that does not exist yet.
type FilterInput interface {
	// Snapshot renders the input as drawn by e. It returns nil without an
	// error when the input has nothing to show.
	Snapshot(r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error)
	// Coverage returns the area of the input as drawn by e.
	Coverage(e *entity.Entity) (geom.Rect, bool)
	// LocalTransform returns the transform applied to the input before the
	// entity transform.
	LocalTransform() geom.Matrix
	// IsTranslationOnly reports whether the input maps its coverage
	// without scaling or rotating it.
	IsTranslationOnly() bool
}

// InputTransform returns the full transform of in as drawn by e.
func InputTransform(in FilterInput, e *entity.Entity) geom.Matrix {
	return e.Transform.Multiply(in.LocalTransform())
}

// ContentsInput reads contents, including other filters.
type ContentsInput struct {
	Contents entity.Contents
}

// InputFromContents returns an input reading c.
func InputFromContents(c entity.Contents) *ContentsInput {
	return &ContentsInput{Contents: c}
}

// Snapshot implements FilterInput.
func (in *ContentsInput) Snapshot(r *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error) {
	if in.Contents == nil {
		return nil, nil
	}
	return RenderToSnapshot(in.Contents, r, e, opts)
}

// Coverage implements FilterInput.
func (in *ContentsInput) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if in.Contents == nil {
		return geom.Rect{}, false
	}
	return in.Contents.Coverage(e)
}

// LocalTransform implements FilterInput.
func (in *ContentsInput) LocalTransform() geom.Matrix { return geom.Identity() }

// IsTranslationOnly implements FilterInput. Nested filters answer for
// themselves.
func (in *ContentsInput) IsTranslationOnly() bool {
	if f, ok := in.Contents.(*FilterContents); ok {
		return f.IsTranslationOnly()
	}
	return true
}

// PopulateGlyphAtlas forwards to contents that draw glyphs.
func (in *ContentsInput) PopulateGlyphAtlas(atlas *text.LazyGlyphAtlas, scale float64) {
	if p, ok := in.Contents.(entity.GlyphAtlasPopulator); ok {
		p.PopulateGlyphAtlas(atlas, scale)
	}
}

// TextureInput reads a texture placed by a local transform.
type TextureInput struct {
	Texture   gpu.Texture
	Transform geom.Matrix
}

// InputFromTexture returns an input reading tex placed by local.
func InputFromTexture(tex gpu.Texture, local geom.Matrix) *TextureInput {
	return &TextureInput{Texture: tex, Transform: local}
}

// Snapshot implements FilterInput.
func (in *TextureInput) Snapshot(_ *entity.ContentContext, e *entity.Entity, opts SnapshotOptions) (*Snapshot, error) {
	if in.Texture == nil {
		return nil, nil
	}
	s := &Snapshot{Texture: in.Texture, Transform: InputTransform(in, e), Opacity: 1}
	if opts.Sampler != nil {
		s.Sampler = *opts.Sampler
	}
	return s, nil
}

// Coverage implements FilterInput.
func (in *TextureInput) Coverage(e *entity.Entity) (geom.Rect, bool) {
	if in.Texture == nil {
		return geom.Rect{}, false
	}
	return geom.MakeSize(in.Texture.Size()).TransformBounds(InputTransform(in, e)), true
}

// LocalTransform implements FilterInput.
func (in *TextureInput) LocalTransform() geom.Matrix { return in.Transform }

// IsTranslationOnly implements FilterInput.
func (in *TextureInput) IsTranslationOnly() bool { return true }

// PlaceholderInput stands for an input of known bounds that is not
// available yet, such as a backdrop. It can be measured but not drawn.
type PlaceholderInput struct {
	Rect geom.Rect
}

// Snapshot implements FilterInput. Placeholders have nothing to draw.
func (in *PlaceholderInput) Snapshot(*entity.ContentContext, *entity.Entity, SnapshotOptions) (*Snapshot, error) {
	return nil, nil
}

// Coverage implements FilterInput.
func (in *PlaceholderInput) Coverage(*entity.Entity) (geom.Rect, bool) {
	return in.Rect, !in.Rect.IsEmpty()
}

// LocalTransform implements FilterInput.
func (in *PlaceholderInput) LocalTransform() geom.Matrix { return geom.Identity() }

// IsTranslationOnly implements FilterInput.
func (in *PlaceholderInput) IsTranslationOnly() bool { return true }
