// Package entity defines the drawable unit of the compositor.
//
// An [Entity] places a [Contents] in a pass with a transform, a blend mode
// and a clip scope. Contents are polymorphic: solid colors, gradients,
// images, text, filters and clip markers all implement the four core
// methods of [Contents] and opt into further behavior through the small
// capability interfaces in this package ([ClipCoverager], [RenderPredicate],
// [BackgroundColorer], [OpacityInheritor], [CoverageHinter],
// [GlyphAtlasPopulator], [ColorFilterProber]).
//
// A [ContentContext] carries what contents need while rendering: the device,
// the render target allocator, the glyph atlas and the pipeline variants.
//
// # Clip depths
//
// ClipDepth is the stencil value an entity draws against. NewClipDepth is
// the depth the entity occupies in the recording order; the renderer maps it
// into [0, 1] with [Entity.ShaderClipDepth].
package entity
