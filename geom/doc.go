// Package geom provides the value types shared by every layer of the
// compositor: points, sizes, rectangles, 4x4 transforms, colors, blend
// modes and paths.
//
// All types are plain values. Optional rectangles are passed as *Rect where
// nil means "absent"; functions that may produce no rectangle return
// (Rect, bool) instead.
package geom
