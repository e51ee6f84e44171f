// Package canvas records drawing commands into a tree of entity passes.
//
// A Canvas keeps a stack of save entries holding the current transform,
// cull rect and clip depth. SaveLayer opens a subpass whose delegate
// decides whether it can be drawn straight into its parent. Every draw takes
// the next value of a depth counter; clips take the depth of the last draw
// they gated when their scope is restored.
//
//	c := canvas.New(canvas.WithCullRect(geom.MakeXYWH(0, 0, 256, 256)))
//	c.DrawPaint(canvas.NewPaint(geom.White))
//	c.SaveLayer(canvas.NewPaint(geom.Black.WithAlpha(0.5)), nil, nil)
//	c.DrawCircle(geom.Pt(128, 128), 64, canvas.NewPaint(geom.Red))
//	c.Restore()
//	pic := c.EndRecordingAsPicture()
//	img, err := pic.ToImage(renderer, geom.ISize{Width: 256, Height: 256})
package canvas
