// Package contents implements the things an entity can draw.
//
// Color sources (SolidColor, the gradients, Texture, RuntimeEffect, Text)
// shade a geometry. Clip and ClipRestore only touch the stencil. Filters
// read one or more inputs through snapshots and produce a new entity.
package contents
