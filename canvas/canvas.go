package canvas

import (
	"slices"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/contents"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/pass"
	"github.com/gogpu/compositor/text"
)

// ClipOp says how a clip combines with the current clip.
type ClipOp = contents.ClipOp

const (
	// ClipIntersect keeps the inside of the clip shape.
	ClipIntersect = contents.ClipIntersect
	// ClipDifference keeps the outside of the clip shape.
	ClipDifference = contents.ClipDifference
)

// stackEntry is the state saved by Save and SaveLayer.
type stackEntry struct {
	transform geom.Matrix
	// cullRect is the visible area in device space, or nil when unknown.
	cullRect  *geom.Rect
	clipDepth uint32
	numClips  int
	// clipStart is the depth counter when the first clip of the entry was
	// pushed.
	clipStart uint32
	subpass   bool
	pass      *pass.EntityPass
}

// Canvas records drawing commands into an entity pass tree.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	opts    options
	base    *pass.EntityPass
	current *pass.EntityPass
	depth   uint32
	stack   []stackEntry
}

// New creates a canvas with an empty base pass.
func New(opts ...Option) *Canvas {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := &Canvas{opts: o}
	c.initialize()
	return c
}

func (c *Canvas) initialize() {
	c.depth = 0
	c.base = pass.New()
	c.depth++
	c.base.SetNewClipDepth(c.depth)
	c.current = c.base
	c.stack = []stackEntry{{
		transform: geom.Identity(),
		cullRect:  copyRect(c.opts.cullRect),
		pass:      c.base,
	}}
}

func copyRect(r *geom.Rect) *geom.Rect {
	if r == nil {
		return nil
	}
	return geom.RectPtr(*r)
}

func (c *Canvas) top() *stackEntry { return &c.stack[len(c.stack)-1] }

// Save pushes the current transform, cull rect and clip.
func (c *Canvas) Save() {
	c.save(false, geom.BlendModeSourceOver, nil)
}

func (c *Canvas) save(subpass bool, mode geom.BlendMode, backdrop ImageFilter) {
	t := c.top()
	entry := stackEntry{
		transform: t.transform,
		cullRect:  copyRect(t.cullRect),
		clipDepth: t.clipDepth,
		pass:      c.current,
	}
	if subpass {
		entry.subpass = true
		sub := pass.New()
		c.depth++
		sub.SetNewClipDepth(c.depth)
		sub.SetEnableOffscreenCheckerboard(c.opts.checkerboard)
		if backdrop != nil {
			sub.SetBackdropFilter(backdropProc(backdrop))
			c.current.SetRequiredMipCount(max(c.current.RequiredMipCount(), backdrop.RequiredMipCount()))
		}
		sub.SetBlendMode(mode)
		c.current = c.current.AddSubpass(sub)
		c.current.SetTransform(t.transform)
		c.current.SetClipDepth(t.clipDepth)
		entry.pass = c.current
	}
	c.stack = append(c.stack, entry)
}

func backdropProc(f ImageFilter) pass.BackdropFilterProc {
	return func(in contents.FilterInput, effect geom.Matrix, mode contents.RenderingMode) *contents.FilterContents {
		fc := f.WrapInput(in)
		fc.SetEffectTransform(effect)
		fc.SetRenderingMode(mode)
		return fc
	}
}

// SaveLayer pushes the current state and starts a layer composited with p
// when restored. bounds, when set, limits the layer in local space.
// backdrop, when set, filters what is below the layer before the layer is
// drawn over it.
func (c *Canvas) SaveLayer(p *Paint, bounds *geom.Rect, backdrop ImageFilter) {
	p = defaultPaint(p)
	if c.culled() {
		c.save(false, p.BlendMode, nil)
		return
	}
	c.save(true, p.BlendMode, backdrop)

	if p.ImageFilter != nil {
		// Culling ignores what the filter moves into view.
		c.top().cullRect = nil
	}

	layer := c.current
	layer.SetBoundsLimit(bounds)
	if p.ImageFilter != nil {
		layer.SetRequiredMipCount(p.ImageFilter.RequiredMipCount())
	}

	switch {
	case p.BlendMode != geom.BlendModeSourceOver:
		layer.SetDelegate(NewPaintPassDelegate(p))
	case p.HasColorFilter() && p.ImageFilter == nil:
		layer.SetDelegate(NewColorFilterPeepholePassDelegate(p))
	default:
		layer.SetDelegate(NewOpacityPeepholePassDelegate(p))
	}
}

// Restore pops the state pushed by the last Save or SaveLayer. It returns
// false when only the initial state is left.
func (c *Canvas) Restore() bool {
	if len(c.stack) == 1 {
		return false
	}
	t := *c.top()
	if t.numClips > 0 {
		c.popClips(&t)
	}
	if t.subpass {
		c.current = c.current.Superpass()
	}
	c.stack = c.stack[:len(c.stack)-1]
	if t.numClips > 0 {
		c.restoreClip()
	}
	return true
}

// popClips assigns the clips of t their depth. A clip scope no draw went
// through still takes a depth of its own.
func (c *Canvas) popClips(t *stackEntry) {
	if c.depth == t.clipStart {
		c.depth++
	}
	t.pass.PopClips(t.numClips, c.depth)
}

// RestoreToCount restores until SaveCount returns n.
func (c *Canvas) RestoreToCount(n int) {
	for c.SaveCount() > n {
		if !c.Restore() {
			return
		}
	}
}

// SaveCount returns the depth of the save stack. A new canvas has a
// count of 1.
func (c *Canvas) SaveCount() int { return len(c.stack) }

// Concat post-multiplies the current transform by m.
func (c *Canvas) Concat(m geom.Matrix) {
	t := c.top()
	t.transform = t.transform.Multiply(m)
}

// PreConcat pre-multiplies the current transform by m.
func (c *Canvas) PreConcat(m geom.Matrix) {
	t := c.top()
	t.transform = m.Multiply(t.transform)
}

// ResetTransform sets the current transform to identity.
func (c *Canvas) ResetTransform() { c.top().transform = geom.Identity() }

// Transform is Concat.
func (c *Canvas) Transform(m geom.Matrix) { c.Concat(m) }

// Translate concatenates a translation.
func (c *Canvas) Translate(dx, dy float64) { c.Concat(geom.Translate(dx, dy)) }

// Scale concatenates a scale.
func (c *Canvas) Scale(sx, sy float64) { c.Concat(geom.Scale(sx, sy)) }

// Skew concatenates a skew.
func (c *Canvas) Skew(sx, sy float64) { c.Concat(geom.Skew(sx, sy)) }

// Rotate concatenates a rotation by radians around the origin.
func (c *Canvas) Rotate(radians float64) { c.Concat(geom.RotateZ(radians)) }

// CurrentTransform returns the current transform.
func (c *Canvas) CurrentTransform() geom.Matrix { return c.top().transform }

// CurrentLocalCullingBounds returns the cull rect in local space, or nil
// when the visible area is unknown.
func (c *Canvas) CurrentLocalCullingBounds() *geom.Rect {
	t := c.top()
	if t.cullRect == nil {
		return nil
	}
	return geom.RectPtr(t.cullRect.TransformBounds(t.transform.Invert()))
}

// newEntity returns an entity under the current transform and clip.
func (c *Canvas) newEntity(contents entity.Contents, mode geom.BlendMode) *entity.Entity {
	e := entity.New(contents)
	e.Transform = c.CurrentTransform()
	e.ClipDepth = c.top().clipDepth
	e.BlendMode = mode
	return e
}

func (c *Canvas) addEntity(e *entity.Entity) {
	c.depth++
	e.NewClipDepth = c.depth
	c.current.AddEntity(e)
}

func (c *Canvas) drawGeometry(g geometry.Geometry, p *Paint) {
	if c.culled() {
		return
	}
	c.addEntity(c.newEntity(p.contentsForGeometry(g), p.BlendMode))
}

// DrawPaint fills the whole clip with p.
func (c *Canvas) DrawPaint(p *Paint) {
	c.drawGeometry(geometry.Cover{}, defaultPaint(p))
}

// DrawPath fills or strokes path.
func (c *Canvas) DrawPath(path *geom.Path, p *Paint) {
	p = defaultPaint(p)
	c.drawGeometry(p.geometryForPath(path), p)
}

// DrawRect fills or strokes r.
func (c *Canvas) DrawRect(r geom.Rect, p *Paint) {
	p = defaultPaint(p)
	if p.Style == StyleStroke {
		c.DrawPath(geom.NewPath().Rectangle(r), p)
		return
	}
	c.drawGeometry(geometry.Rect{Rect: r}, p)
}

// DrawOval fills or strokes the ellipse inscribed in r.
func (c *Canvas) DrawOval(r geom.Rect, p *Paint) {
	p = defaultPaint(p)
	if r.Width() == r.Height() {
		c.DrawCircle(r.Center(), r.Width()/2, p)
		return
	}
	if p.Style == StyleStroke {
		c.DrawPath(geom.NewPath().Ellipse(r), p)
		return
	}
	c.drawGeometry(geometry.Ellipse{Rect: r}, p)
}

// DrawRRect fills or strokes r with elliptical corners of radii.
func (c *Canvas) DrawRRect(r geom.Rect, radii geom.Size, p *Paint) {
	p = defaultPaint(p)
	if p.Style == StyleFill {
		c.drawGeometry(geometry.RoundRect{Rect: r, Radii: radii}, p)
		return
	}
	path := geom.NewPath().RoundedRectangle(r, radii).SetConvexity(geom.ConvexityConvex)
	c.DrawPath(path, p)
}

// DrawCircle fills or strokes a circle.
func (c *Canvas) DrawCircle(center geom.Point, radius float64, p *Paint) {
	p = defaultPaint(p)
	if p.Style == StyleStroke {
		if p.StrokeWidth <= 0 {
			c.DrawPath(geom.NewPath().Circle(center, radius), p)
			return
		}
		c.drawGeometry(geometry.Circle{Center: center, Radius: radius, StrokeWidth: p.StrokeWidth}, p)
		return
	}
	c.drawGeometry(geometry.Circle{Center: center, Radius: radius}, p)
}

// DrawLine strokes the segment from p0 to p1.
func (c *Canvas) DrawLine(p0, p1 geom.Point, p *Paint) {
	p = defaultPaint(p)
	c.drawGeometry(geometry.Line{P0: p0, P1: p1, Width: p.StrokeWidth, Cap: p.StrokeCap}, p)
}

// PointStyle selects the shape DrawPoints draws.
type PointStyle uint8

const (
	// PointRound draws discs.
	PointRound PointStyle = iota
	// PointSquare draws squares.
	PointSquare
)

// DrawPoints draws a disc or square of radius around each point. Stroke
// settings of p are ignored.
func (c *Canvas) DrawPoints(points []geom.Point, radius float64, p *Paint, style PointStyle) {
	if radius <= 0 || len(points) == 0 {
		return
	}
	p = defaultPaint(p)
	g := geometry.PointField{Points: slices.Clone(points), Radius: radius, Round: style == PointRound}
	c.drawGeometry(g, p)
}

// DrawImage draws img with its top left corner at offset.
func (c *Canvas) DrawImage(img *Image, offset geom.Point, p *Paint, sampler gpu.SamplerDescriptor) {
	if img == nil {
		return
	}
	src := geom.MakeSize(img.Size())
	c.DrawImageRect(img, src, src.Shift(offset), p, sampler)
}

// DrawImageRect draws the src rect of img into dst.
func (c *Canvas) DrawImageRect(img *Image, src, dst geom.Rect, p *Paint, sampler gpu.SamplerDescriptor) {
	if img == nil || src.IsEmpty() || dst.IsEmpty() || img.Size().IsEmpty() || c.culled() {
		return
	}
	p = defaultPaint(p)
	tc := contents.NewTexture(img.Texture(), dst)
	tc.SetSourceRect(src)
	tc.SetSampler(sampler)
	tc.SetOpacity(p.Color.A)
	tc.SetDeferApplyingOpacity(p.HasColorFilter())
	c.addEntity(c.newEntity(p.withFilters(tc), p.BlendMode))
}

// DrawTextFrame draws f with its baseline origin at position.
func (c *Canvas) DrawTextFrame(f *text.Frame, position geom.Point, p *Paint) {
	if f == nil || c.culled() {
		return
	}
	p = defaultPaint(p)
	var tc entity.Contents = contents.NewText(f, geom.Point{}, p.Color)
	if p.MaskBlur != nil && p.MaskBlur.Sigma > 0 {
		tc = p.maskBlur(tc)
	}
	e := c.newEntity(p.withFilters(tc), p.BlendMode)
	e.Transform = e.Transform.Multiply(geom.TranslatePoint(position))
	c.addEntity(e)
}

// ClipPath clips to the inside or outside of path.
func (c *Canvas) ClipPath(path *geom.Path, op ClipOp) {
	b, ok := path.Bounds()
	if !ok {
		b = geom.Rect{}
	}
	if c.clipHidesAll(b, op) {
		return
	}
	c.clipGeometry(geometry.FillPath{Path: path}, op)
	if op == ClipIntersect && ok {
		c.intersectCulling(b)
	}
}

// ClipRect clips to the inside or outside of r. Intersecting with a rect
// that covers the visible area does nothing and records nothing.
func (c *Canvas) ClipRect(r geom.Rect, op ClipOp) {
	g := geometry.Rect{Rect: r}
	if c.clipIsNoop(g, op) || c.clipHidesAll(r, op) {
		return
	}
	c.clipGeometry(g, op)
	switch op {
	case ClipIntersect:
		c.intersectCulling(r)
	case ClipDifference:
		c.subtractCulling(r)
	}
}

// ClipOval clips to the inside or outside of the ellipse inscribed in r.
func (c *Canvas) ClipOval(r geom.Rect, op ClipOp) {
	g := geometry.Ellipse{Rect: r}
	if c.clipIsNoop(g, op) || c.clipHidesAll(r, op) {
		return
	}
	c.clipGeometry(g, op)
	if op == ClipIntersect {
		c.intersectCulling(r)
	}
}

// ClipRRect clips to the inside or outside of a rounded rect.
func (c *Canvas) ClipRRect(r geom.Rect, radii geom.Size, op ClipOp) {
	g := geometry.RoundRect{Rect: r, Radii: radii}
	if c.clipIsNoop(g, op) || c.clipHidesAll(r, op) {
		return
	}
	c.clipGeometry(g, op)
	switch op {
	case ClipIntersect:
		c.intersectCulling(r)
	case ClipDifference:
		if radii.IsEmpty() {
			c.subtractCulling(r)
			break
		}
		// Only the parts spared by the corners are known to be cut out.
		if radii.Width*2 < r.Width() {
			c.subtractCulling(r.Expand(-radii.Width, 0))
		}
		if radii.Height*2 < r.Height() {
			c.subtractCulling(r.Expand(0, -radii.Height))
		}
	}
}

func (c *Canvas) clipIsNoop(g geometry.Geometry, op ClipOp) bool {
	t := c.top()
	return op == ClipIntersect && t.cullRect != nil && g.CoversArea(t.transform, *t.cullRect)
}

// culled reports whether nothing drawn in the current state can be seen.
func (c *Canvas) culled() bool {
	t := c.top()
	return t.cullRect != nil && t.cullRect.IsEmpty()
}

// clipHidesAll reports whether an intersect clip with local bounds b
// leaves nothing visible and empties the cull rect when it does. The clip
// and everything drawn under it until the matching restore are dropped.
func (c *Canvas) clipHidesAll(b geom.Rect, op ClipOp) bool {
	if c.culled() {
		return true
	}
	t := c.top()
	if op != ClipIntersect || t.cullRect == nil {
		return false
	}
	if _, ok := t.cullRect.Intersection(b.TransformBounds(t.transform)); ok {
		return false
	}
	t.cullRect = geom.RectPtr(geom.Rect{})
	return true
}

func (c *Canvas) clipGeometry(g geometry.Geometry, op ClipOp) {
	e := entity.New(contents.NewClip(g, op))
	e.Transform = c.CurrentTransform()
	t := c.top()
	e.ClipDepth = t.clipDepth
	c.current.PushClip(e)

	if t.numClips == 0 {
		t.clipStart = c.depth
	}
	t.clipDepth++
	t.numClips++
}

func (c *Canvas) intersectCulling(r geom.Rect) {
	t := c.top()
	r = r.TransformBounds(t.transform)
	if t.cullRect == nil {
		t.cullRect = geom.RectPtr(r)
		return
	}
	isect, _ := t.cullRect.Intersection(r)
	t.cullRect = geom.RectPtr(isect)
}

func (c *Canvas) subtractCulling(r geom.Rect) {
	t := c.top()
	if t.cullRect == nil || !t.transform.IsTranslationScaleOnly() {
		return
	}
	rest, _ := t.cullRect.Cutout(r.TransformBounds(t.transform))
	t.cullRect = geom.RectPtr(rest)
}

// restoreClip records the entity that undoes the clips of a restored
// entry.
func (c *Canvas) restoreClip() {
	e := entity.New(contents.NewClipRestore())
	e.Transform = c.CurrentTransform()
	e.ClipDepth = c.top().clipDepth
	c.addEntity(e)
}

// EndRecordingAsPicture assigns the outstanding clips their depth and
// returns the recorded picture. The canvas starts over with an empty base
// pass.
func (c *Canvas) EndRecordingAsPicture() *Picture {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if t := &c.stack[i]; t.numClips > 0 {
			c.popClips(t)
		}
	}
	if c.SaveCount() > 1 {
		compositor.Logger().Debug("canvas: picture ended with unrestored saves", "count", c.SaveCount()-1)
	}
	pic := &Picture{pass: c.base}
	c.initialize()
	return pic
}
