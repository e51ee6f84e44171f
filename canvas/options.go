package canvas

import "github.com/gogpu/compositor/geom"

// Option configures a Canvas during creation.
//
// Example:
//
//	c := canvas.New(
//		canvas.WithCullRect(geom.MakeXYWH(0, 0, 800, 600)),
//		canvas.WithOffscreenCheckerboard(true),
//	)
type Option func(*options)

type options struct {
	cullRect     *geom.Rect
	checkerboard bool
}

// WithCullRect sets the initial cull rect in device space. Intersect clips
// that cover the cull rect are dropped.
func WithCullRect(r geom.Rect) Option {
	return func(o *options) {
		o.cullRect = geom.RectPtr(r)
	}
}

// WithOffscreenCheckerboard tints every offscreen layer with a checkerboard
// before its contents are drawn.
func WithOffscreenCheckerboard(enabled bool) Option {
	return func(o *options) {
		o.checkerboard = enabled
	}
}
