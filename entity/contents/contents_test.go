package contents

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/compositor/backend/software"
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/entity/geometry"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/filter"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/text"
)

// target is an onscreen pass with a stencil attachment.
type target struct {
	r    *entity.ContentContext
	rt   gpu.RenderTarget
	cb   gpu.CommandBuffer
	pass gpu.RenderPass
}

func newTarget(t *testing.T, ctx gpu.Context, w, h int) *target {
	t.Helper()
	rt, err := gpu.CreateRenderTarget(ctx, "test", gpu.RenderTargetConfig{
		Size:       geom.ISize{Width: w, Height: h},
		HasStencil: true,
	})
	if err != nil {
		t.Fatalf("CreateRenderTarget() error = %v", err)
	}
	cb, err := ctx.CreateCommandBuffer()
	if err != nil {
		t.Fatalf("CreateCommandBuffer() error = %v", err)
	}
	p, err := cb.CreateRenderPass(rt)
	if err != nil {
		t.Fatalf("CreateRenderPass() error = %v", err)
	}
	return &target{r: entity.NewContentContext(ctx), rt: rt, cb: cb, pass: p}
}

func (tg *target) draw(t *testing.T, e *entity.Entity) {
	t.Helper()
	if err := e.Render(tg.r, tg.pass); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func (tg *target) submit(t *testing.T) {
	t.Helper()
	if err := tg.pass.EncodeCommands(); err != nil {
		t.Fatalf("EncodeCommands() error = %v", err)
	}
	if err := tg.cb.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func (tg *target) color(t *testing.T, x, y int) geom.Color {
	t.Helper()
	c, err := software.ReadColor(tg.rt.RenderTargetTexture(), x, y)
	if err != nil {
		t.Fatalf("ReadColor() error = %v", err)
	}
	return c
}

func (tg *target) stencil(x, y int) uint32 {
	return tg.rt.Stencil.Texture.(*software.Texture).Stencil(x, y)
}

func rectFill(r geom.Rect, c geom.Color) *entity.Entity {
	return entity.New(NewSolidColor(geometry.Rect{Rect: r}, c))
}

func TestSolidColorOpacity(t *testing.T) {
	s := NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(0, 0, 10, 10)}, geom.RGBA(1, 0, 0, 0.8))
	s.SetOpacity(0.5)
	s.SetInheritedOpacity(0.5)
	if got := s.Color().A; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Color().A = %v, want 0.2", got)
	}
	if s.IsOpaque() {
		t.Errorf("IsOpaque() = true, want false")
	}

	s.SetOpacity(0)
	if _, ok := s.Coverage(entity.New(s)); ok {
		t.Errorf("Coverage() of transparent fill ok = true, want false")
	}
}

func TestSolidColorAsBackgroundColor(t *testing.T) {
	target := geom.ISize{Width: 100, Height: 100}
	tests := []struct {
		name      string
		geometry  geometry.Geometry
		transform geom.Matrix
		want      bool
	}{
		{"cover", geometry.Cover{}, geom.Identity(), true},
		{"full rect", geometry.Rect{Rect: geom.MakeXYWH(0, 0, 100, 100)}, geom.Identity(), true},
		{"partial rect", geometry.Rect{Rect: geom.MakeXYWH(0, 0, 50, 100)}, geom.Identity(), false},
		{"scaled rect", geometry.Rect{Rect: geom.MakeXYWH(0, 0, 50, 50)}, geom.Scale(2, 2), true},
		{"rotated rect", geometry.Rect{Rect: geom.MakeXYWH(-100, -100, 300, 300)}, geom.RotateZ(0.1), false},
		{"ellipse", geometry.Ellipse{Rect: geom.MakeXYWH(-50, -50, 200, 200)}, geom.Identity(), false},
		{"round rect", geometry.RoundRect{Rect: geom.MakeXYWH(-50, -50, 200, 200), Radii: geom.Size{Width: 4, Height: 4}}, geom.Identity(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolidColor(tt.geometry, geom.Red)
			e := entity.New(s)
			e.Transform = tt.transform
			_, got := s.AsBackgroundColor(e, target)
			if got != tt.want {
				t.Errorf("AsBackgroundColor() ok = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStops(t *testing.T) {
	tests := []struct {
		name    string
		colors  int
		offsets []float64
		want    []float64
	}{
		{"spread", 3, nil, []float64{0, 0.5, 1}},
		{"explicit", 2, []float64{0.25, 0.75}, []float64{0.25, 0.75}},
		{"decreasing", 3, []float64{0.5, 0.2, 1}, []float64{0.5, 0.5, 1}},
		{"out of range", 2, []float64{-1, 2}, []float64{0, 1}},
		{"single", 1, nil, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colors := make([]geom.Color, tt.colors)
			got := Stops(colors, tt.offsets)
			for i, s := range got {
				if s.Offset != tt.want[i] {
					t.Errorf("Stops()[%d].Offset = %v, want %v", i, s.Offset, tt.want[i])
				}
			}
		})
	}
}

func TestGradientIsOpaque(t *testing.T) {
	opaque := Stops([]geom.Color{geom.Red, geom.Blue}, nil)
	translucent := Stops([]geom.Color{geom.Red, geom.Blue.WithAlpha(0.5)}, nil)
	g := geometry.Rect{Rect: geom.MakeXYWH(0, 0, 10, 10)}
	tests := []struct {
		name    string
		stops   []gpu.GradientStop
		mode    gpu.TileMode
		opacity float64
		want    bool
	}{
		{"opaque clamp", opaque, gpu.TileClamp, 1, true},
		{"opaque repeat", opaque, gpu.TileRepeat, 1, true},
		{"decal", opaque, gpu.TileDecal, 1, false},
		{"translucent stop", translucent, gpu.TileClamp, 1, false},
		{"opacity", opaque, gpu.TileClamp, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLinearGradient(g, geom.Pt(0, 0), geom.Pt(10, 0), tt.stops, tt.mode)
			l.SetOpacity(tt.opacity)
			if got := l.IsOpaque(); got != tt.want {
				t.Errorf("IsOpaque() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinearGradientRender(t *testing.T) {
	tg := newTarget(t, software.NewContext(), 10, 1)
	stops := Stops([]geom.Color{geom.Black, geom.White}, nil)
	tg.draw(t, entity.New(NewLinearGradient(geometry.Rect{Rect: geom.MakeXYWH(0, 0, 10, 1)}, geom.Pt(0, 0), geom.Pt(10, 0), stops, gpu.TileClamp)))
	tg.submit(t)

	left, right := tg.color(t, 1, 0), tg.color(t, 8, 0)
	if !(left.R < right.R) {
		t.Errorf("gradient R at x=1 = %v, x=8 = %v, want increasing", left.R, right.R)
	}
	if got := tg.color(t, 5, 0).A; math.Abs(got-1) > 1e-9 {
		t.Errorf("gradient alpha = %v, want 1", got)
	}
}

func TestGradientApplyColorFilter(t *testing.T) {
	r := NewRadialGradient(geometry.Cover{}, geom.Pt(0, 0), 10, Stops([]geom.Color{geom.Red, geom.Red}, nil), gpu.TileClamp)
	if !r.ApplyColorFilter(func(geom.Color) geom.Color { return geom.Green }) {
		t.Fatalf("ApplyColorFilter() = false, want true")
	}
	for i, s := range r.Stops() {
		if s.Color != geom.Green {
			t.Errorf("Stops()[%d].Color = %v, want %v", i, s.Color, geom.Green)
		}
	}
}

func TestClipCoverage(t *testing.T) {
	current := geom.MakeXYWH(0, 0, 100, 100)
	tests := []struct {
		name    string
		op      ClipOp
		rect    geom.Rect
		current *geom.Rect
		want    *geom.Rect
	}{
		{"nothing visible", ClipIntersect, geom.MakeXYWH(10, 10, 10, 10), nil, nil},
		{"intersect", ClipIntersect, geom.MakeXYWH(50, 50, 100, 100), &current, geom.RectPtr(geom.MakeXYWH(50, 50, 50, 50))},
		{"intersect disjoint", ClipIntersect, geom.MakeXYWH(200, 200, 10, 10), &current, nil},
		{"difference keeps current", ClipDifference, geom.MakeXYWH(10, 10, 10, 10), &current, &current},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClip(geometry.Rect{Rect: tt.rect}, tt.op)
			got := c.ClipCoverage(entity.New(c), tt.current)
			if got.Type != entity.ClipAppend {
				t.Errorf("ClipCoverage().Type = %v, want Append", got.Type)
			}
			switch {
			case tt.want == nil && got.Coverage != nil:
				t.Errorf("ClipCoverage().Coverage = %v, want nil", *got.Coverage)
			case tt.want != nil && (got.Coverage == nil || *got.Coverage != *tt.want):
				t.Errorf("ClipCoverage().Coverage = %v, want %v", got.Coverage, *tt.want)
			}
		})
	}

	r := NewClipRestore()
	if got := r.ClipCoverage(entity.New(r), &current); got.Type != entity.ClipRestore || got.Coverage != nil {
		t.Errorf("ClipRestore.ClipCoverage() = %+v, want Restore with nil coverage", got)
	}
}

func TestIntersectClipStencil(t *testing.T) {
	tg := newTarget(t, software.NewContext(), 10, 10)

	clip := entity.New(NewClip(geometry.Rect{Rect: geom.MakeXYWH(2, 2, 4, 4)}, ClipIntersect))
	tg.draw(t, clip)

	fill := rectFill(geom.MakeXYWH(0, 0, 10, 10), geom.Red)
	fill.ClipDepth = 1
	tg.draw(t, fill)
	tg.submit(t)

	tests := []struct {
		x, y    int
		stencil uint32
		alpha   float64
	}{
		{3, 3, 1, 1},
		{5, 5, 1, 1},
		{0, 0, 0, 0},
		{7, 3, 0, 0},
	}
	for _, tt := range tests {
		if got := tg.stencil(tt.x, tt.y); got != tt.stencil {
			t.Errorf("Stencil(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.stencil)
		}
		if got := tg.color(t, tt.x, tt.y).A; got != tt.alpha {
			t.Errorf("color(%d, %d).A = %v, want %v", tt.x, tt.y, got, tt.alpha)
		}
	}
}

func TestDifferenceClipAndRestore(t *testing.T) {
	tg := newTarget(t, software.NewContext(), 10, 10)
	tg.draw(t, entity.New(NewClip(geometry.Rect{Rect: geom.MakeXYWH(2, 2, 4, 4)}, ClipDifference)))

	fill := rectFill(geom.MakeXYWH(0, 0, 10, 10), geom.Blue)
	fill.ClipDepth = 1
	tg.draw(t, fill)

	tg.draw(t, entity.New(NewClipRestore()))
	tg.submit(t)

	if got := tg.color(t, 3, 3).A; got != 0 {
		t.Errorf("color inside difference clip A = %v, want 0", got)
	}
	if got := tg.color(t, 8, 8); got != geom.Blue {
		t.Errorf("color outside difference clip = %v, want %v", got, geom.Blue)
	}
	for _, p := range [][2]int{{3, 3}, {8, 8}} {
		if got := tg.stencil(p[0], p[1]); got != 0 {
			t.Errorf("Stencil%v after restore = %d, want 0", p, got)
		}
	}
}

func TestStrokePreventsOverdraw(t *testing.T) {
	tg := newTarget(t, software.NewContext(), 20, 20)
	path := geom.NewPath().MoveTo(2, 10).LineTo(18, 10).LineTo(10, 2)
	stroke := geometry.StrokePath{Path: path, Width: 4, Join: geometry.JoinRound, Cap: geometry.CapRound}
	tg.draw(t, entity.New(NewSolidColor(stroke, geom.Red.WithAlpha(0.5))))
	tg.submit(t)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if a := tg.color(t, x, y).A; a > 0.5+1e-9 {
				t.Fatalf("color(%d, %d).A = %v, want at most 0.5", x, y, a)
			}
			if s := tg.stencil(x, y); s != 0 {
				t.Fatalf("Stencil(%d, %d) = %d, want 0", x, y, s)
			}
		}
	}
	if got := tg.color(t, 17, 10).A; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("color at the corner A = %v, want 0.5", got)
	}
}

func TestRenderToSnapshot(t *testing.T) {
	ctx := software.NewContext()
	r := entity.NewContentContext(ctx)
	s := NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(2, 2, 4, 4)}, geom.Red)

	snap, err := RenderToSnapshot(s, r, entity.New(s), SnapshotOptions{})
	if err != nil {
		t.Fatalf("RenderToSnapshot() error = %v", err)
	}
	if got, want := snap.Texture.Size(), (geom.ISize{Width: 6, Height: 6}); got != want {
		t.Errorf("snapshot size = %v, want %v", got, want)
	}
	if got, want := snap.Transform, geom.Translate(1, 1); got != want {
		t.Errorf("snapshot transform = %v, want %v", got, want)
	}
	if c, _ := software.ReadColor(snap.Texture, 0, 0); c.A != 0 {
		t.Errorf("snapshot padding A = %v, want 0", c.A)
	}
	if c, _ := software.ReadColor(snap.Texture, 1, 1); c != geom.Red {
		t.Errorf("snapshot pixel = %v, want %v", c, geom.Red)
	}

	limit := geom.MakeXYWH(100, 100, 10, 10)
	snap, err = RenderToSnapshot(s, r, entity.New(s), SnapshotOptions{CoverageLimit: &limit})
	if err != nil || snap != nil {
		t.Errorf("RenderToSnapshot() outside limit = %v, %v, want nil, nil", snap, err)
	}
}

func TestTextureSnapshotPassThrough(t *testing.T) {
	ctx := software.NewContext()
	r := entity.NewContentContext(ctx)
	tex, err := ctx.Allocator().CreateTexture(gpu.TextureDescriptor{
		Label: "image", Size: geom.ISize{Width: 4, Height: 4}, Format: ctx.Capabilities().DefaultColorFormat,
		MipCount: 1, SampleCount: 1, Usage: gpu.UsageShaderRead,
	})
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}

	c := NewTexture(tex, geom.MakeXYWH(10, 10, 8, 8))
	snap, err := RenderToSnapshot(c, r, entity.New(c), SnapshotOptions{})
	if err != nil {
		t.Fatalf("RenderToSnapshot() error = %v", err)
	}
	if snap.Texture != tex {
		t.Errorf("snapshot texture is a copy, want the source texture")
	}
	want := geom.Translate(10, 10).Multiply(geom.Scale(2, 2))
	if snap.Transform != want {
		t.Errorf("snapshot transform = %v, want %v", snap.Transform, want)
	}

	c.SetOpacity(0.5)
	c.SetDeferApplyingOpacity(true)
	snap, _ = RenderToSnapshot(c, r, entity.New(c), SnapshotOptions{})
	if snap.Texture != tex || snap.Opacity != 0.5 {
		t.Errorf("deferred snapshot = (%v, %v), want the source texture at 0.5", snap.Texture == tex, snap.Opacity)
	}
}

func TestGaussianBlurCoverage(t *testing.T) {
	input := InputFromContents(NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(10, 10, 10, 10)}, geom.Red))
	blur := NewGaussianBlur(input, 4, 4, gpu.TileDecal)

	pad := filter.BlurPadding(4)
	want := geom.MakeXYWH(10, 10, 10, 10).Expand(pad, pad)
	got, ok := blur.Coverage(entity.New(blur))
	if !ok || got != want {
		t.Errorf("Coverage() = %v, %v, want %v", got, ok, want)
	}

	e := entity.New(blur)
	e.Transform = geom.Scale(2, 2)
	want = geom.MakeXYWH(20, 20, 20, 20).Expand(2*pad, 2*pad)
	if got, _ := blur.Coverage(e); got != want {
		t.Errorf("Coverage() scaled = %v, want %v", got, want)
	}

	limit := geom.MakeXYWH(0, 0, 50, 50)
	radius := filter.SigmaToRadius(filter.ScaleSigma(4))
	if got, _ := blur.SourceCoverage(geom.Identity(), limit); got != limit.Expand(radius, radius) {
		t.Errorf("SourceCoverage() = %v, want %v", got, limit.Expand(radius, radius))
	}
}

func TestGaussianBlurRender(t *testing.T) {
	rec := recording.New(software.NewContext())
	tg := newTarget(t, rec, 30, 30)
	input := InputFromContents(NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(10, 10, 10, 10)}, geom.Red))
	tg.draw(t, entity.New(NewGaussianBlur(input, 2, 2, gpu.TileDecal)))
	tg.submit(t)

	if got := tg.color(t, 15, 15).A; got < 0.9 {
		t.Errorf("blurred center A = %v, want > 0.9", got)
	}
	if got := tg.color(t, 21, 15).A; got <= 0 || got >= 0.5 {
		t.Errorf("blurred halo A = %v, want in (0, 0.5)", got)
	}
	if got := tg.color(t, 2, 2).A; got != 0 {
		t.Errorf("far pixel A = %v, want 0", got)
	}
	if got := len(rec.Recording().CommandsWith(gpu.PipelineGaussianBlur)); got != 2 {
		t.Errorf("blur commands = %d, want 2", got)
	}
}

func TestColorMatrixFilter(t *testing.T) {
	tg := newTarget(t, software.NewContext(), 10, 10)
	swap := filter.ColorMatrix{
		0, 0, 1, 0, 0,
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}
	input := InputFromContents(NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(2, 2, 4, 4)}, geom.Red))
	tg.draw(t, entity.New(NewColorMatrix(input, swap, true)))
	tg.submit(t)

	if got := tg.color(t, 3, 3); !got.ApproxEqual(geom.Blue, 1e-9) {
		t.Errorf("filtered color = %v, want %v", got, geom.Blue)
	}
	if got := tg.color(t, 8, 8).A; got != 0 {
		t.Errorf("outside color A = %v, want 0", got)
	}
}

func TestBlendFilterForeground(t *testing.T) {
	tests := []struct {
		name       string
		mode       geom.BlendMode
		foreground geom.Color
		want       geom.Color
	}{
		{"source in", geom.BlendModeSourceIn, geom.Blue, geom.Blue},
		{"multiply", geom.BlendModeMultiply, geom.White, geom.Red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTarget(t, software.NewContext(), 10, 10)
			input := InputFromContents(NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(2, 2, 4, 4)}, geom.Red))
			tg.draw(t, entity.New(NewBlend([]FilterInput{input}, tt.mode, &tt.foreground)))
			tg.submit(t)

			if got := tg.color(t, 3, 3); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("blended color = %v, want %v", got, tt.want)
			}
			if got := tg.color(t, 8, 8).A; got != 0 {
				t.Errorf("outside color A = %v, want 0", got)
			}
		})
	}
}

func TestMatrixFilterCoverage(t *testing.T) {
	input := InputFromContents(NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(0, 0, 10, 10)}, geom.Red))

	moved := NewMatrix(input, geom.Translate(5, 0), gpu.SamplerDescriptor{})
	if got, _ := moved.Coverage(entity.New(moved)); got != geom.MakeXYWH(5, 0, 10, 10) {
		t.Errorf("Coverage() = %v, want %v", got, geom.MakeXYWH(5, 0, 10, 10))
	}
	if !moved.IsTranslationOnly() {
		t.Errorf("IsTranslationOnly() = false, want true")
	}

	scaled := NewMatrix(input, geom.Scale(2, 2), gpu.SamplerDescriptor{})
	if scaled.IsTranslationOnly() {
		t.Errorf("IsTranslationOnly() of scale = true, want false")
	}
	scaled.SetRenderingMode(RenderingSubpass)
	scaled.SetEffectTransform(geom.Translate(10, 10))
	// Scaling about (10, 10) maps (0,0)-(10,10) to (-10,-10)-(10,10).
	got, _ := scaled.Coverage(entity.New(scaled))
	if want := geom.MakeLTRB(-10, -10, 10, 10); got != want {
		t.Errorf("Coverage() in subpass mode = %v, want %v", got, want)
	}
}

func TestFramebufferBlendRequiresFetch(t *testing.T) {
	tg := newTarget(t, software.NewContext(), 10, 10)
	child := NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(0, 0, 5, 5)}, geom.Red)
	err := entity.New(NewFramebufferBlend(child, geom.BlendModeScreen)).Render(tg.r, tg.pass)
	if !errors.Is(err, gpu.ErrUnsupported) {
		t.Errorf("Render() error = %v, want %v", err, gpu.ErrUnsupported)
	}
}

func TestFramebufferBlendScreen(t *testing.T) {
	tg := newTarget(t, software.NewContext(software.WithFramebufferFetch(true)), 10, 10)
	tg.draw(t, rectFill(geom.MakeXYWH(0, 0, 10, 10), geom.Red))
	child := NewSolidColor(geometry.Rect{Rect: geom.MakeXYWH(0, 0, 5, 5)}, geom.Blue)
	tg.draw(t, entity.New(NewFramebufferBlend(child, geom.BlendModeScreen)))
	tg.submit(t)

	if got := tg.color(t, 2, 2); !got.ApproxEqual(geom.Magenta, 1e-9) {
		t.Errorf("screen blended color = %v, want %v", got, geom.Magenta)
	}
	if got := tg.color(t, 8, 8); got != geom.Red {
		t.Errorf("untouched color = %v, want %v", got, geom.Red)
	}
}

func TestTextRender(t *testing.T) {
	rec := recording.New(software.NewContext())
	tg := newTarget(t, rec, 80, 40)
	frame := text.Shape("Hi", text.DefaultFace(), 24)
	c := NewText(frame, geom.Pt(4, 30), geom.Black)
	e := entity.New(c)

	cov, ok := c.Coverage(e)
	if !ok {
		t.Fatalf("Coverage() ok = false, want true")
	}
	c.PopulateGlyphAtlas(tg.r.GlyphAtlas(), e.DeriveTextScale())
	tg.draw(t, e)
	tg.submit(t)

	if got := len(rec.Recording().CommandsWith(gpu.PipelineGlyphAtlas)); got != 1 {
		t.Fatalf("glyph commands = %d, want 1", got)
	}
	inked := 0
	for y := int(cov.MinY); y < int(math.Ceil(cov.MaxY)); y++ {
		for x := int(cov.MinX); x < int(math.Ceil(cov.MaxX)); x++ {
			if tg.color(t, x, y).A > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Errorf("text drew no pixels inside its coverage %v", cov)
	}
}
