// Package compositor is the retained-mode compositing core of a 2D renderer.
//
// # Overview
//
// Drawing commands are recorded through a [canvas.Canvas] into a tree of
// nested passes. Each pass is an ordered list of entities and child passes
// with its own transform, blend mode and clip scope. When the recording is
// rendered, the pass tree is flattened into draw commands for a GPU backend.
// Child passes are either collapsed into their parent's render pass or
// rendered into an offscreen texture and composited back.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/compositor/backend/software"
//	    "github.com/gogpu/compositor/canvas"
//	    "github.com/gogpu/compositor/entity"
//	    "github.com/gogpu/compositor/geom"
//	)
//
//	cv := canvas.New()
//	cv.DrawPaint(canvas.NewPaint(geom.Red))
//	pic := cv.EndRecordingAsPicture()
//
//	renderer := entity.NewContentContext(software.NewContext())
//	img, err := pic.ToImage(renderer, geom.ISize{Width: 256, Height: 256})
//
// # Architecture
//
// The module is organized into:
//   - geom: points, rects, 4x4 matrices, colors and blend modes
//   - gpu: the backend abstraction (command buffers, render passes, textures)
//   - entity: entities, contents capabilities and the content context
//   - pass: the pass tree and the render algorithm
//   - canvas: the recording API, paints, filters and pictures
//   - backend/software: a CPU backend for tests and offline rendering
//   - recording: a spy backend that records passes and commands
//   - text: glyph shaping, text frames and the glyph atlas
//
// # Coordinate System
//
// Origin (0,0) is the top-left corner of the root target, X increases to the
// right and Y increases downward. Depth and pixel values are float64.
package compositor

// Version information
const (
	// Version is the current version of the library
	Version = "0.4.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 4

	// VersionPatch is the patch version
	VersionPatch = 0
)
