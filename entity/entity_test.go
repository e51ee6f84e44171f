package entity

import (
	"errors"
	"testing"

	"github.com/gogpu/compositor/backend/software"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/recording"
)

type fakeContents struct {
	Base
	coverage *geom.Rect
	opaque   bool
	inherit  bool
	opacity  float64
	hints    []*geom.Rect
}

func (c *fakeContents) Render(_ *ContentContext, _ *Entity, _ gpu.RenderPass) error {
	c.hints = append(c.hints, c.CoverageHint())
	return nil
}

func (c *fakeContents) Coverage(e *Entity) (geom.Rect, bool) {
	if c.coverage == nil {
		return geom.Rect{}, false
	}
	return c.coverage.TransformBounds(e.Transform), true
}

func (c *fakeContents) IsOpaque() bool { return c.opaque }

func (c *fakeContents) CanInheritOpacity(*Entity) bool { return c.inherit }

func (c *fakeContents) SetInheritedOpacity(o float64) { c.opacity = o }

func newPass(t *testing.T, ctx gpu.Context, w, h int) gpu.RenderPass {
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
	return p
}

func TestEntityShouldRender(t *testing.T) {
	clip := geom.MakeXYWH(0, 0, 10, 10)
	maxRect := geom.MakeMaximum()
	tests := []struct {
		name     string
		coverage *geom.Rect
		clip     *geom.Rect
		want     bool
	}{
		{"nil clip", geom.RectPtr(geom.MakeXYWH(0, 0, 5, 5)), nil, false},
		{"no coverage", nil, &clip, false},
		{"maximum coverage", &maxRect, &clip, true},
		{"intersecting", geom.RectPtr(geom.MakeXYWH(8, 8, 5, 5)), &clip, true},
		{"disjoint", geom.RectPtr(geom.MakeXYWH(20, 20, 5, 5)), &clip, false},
		{"touching edge", geom.RectPtr(geom.MakeXYWH(10, 0, 5, 5)), &clip, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(&fakeContents{coverage: tt.coverage})
			if got := e.ShouldRender(tt.clip); got != tt.want {
				t.Errorf("ShouldRender() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityClipCoverageDefault(t *testing.T) {
	current := geom.MakeXYWH(1, 2, 3, 4)
	e := New(&fakeContents{})
	got := e.ClipCoverage(&current)
	if got.Type != ClipNoChange {
		t.Errorf("ClipCoverage().Type = %v, want %v", got.Type, ClipNoChange)
	}
	if got.Coverage == nil || *got.Coverage != current {
		t.Errorf("ClipCoverage().Coverage = %v, want %v", got.Coverage, current)
	}
}

func TestEntityCanInheritOpacity(t *testing.T) {
	tests := []struct {
		name     string
		blend    geom.BlendMode
		opaque   bool
		inherit  bool
		want     bool
		wantMode geom.BlendMode
	}{
		{"source over", geom.BlendModeSourceOver, false, true, true, geom.BlendModeSourceOver},
		{"opaque source", geom.BlendModeSource, true, true, true, geom.BlendModeSourceOver},
		{"translucent source", geom.BlendModeSource, false, true, false, geom.BlendModeSource},
		{"advanced", geom.BlendModeMultiply, false, true, false, geom.BlendModeMultiply},
		{"contents refuse", geom.BlendModeSourceOver, false, false, false, geom.BlendModeSourceOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeContents{opaque: tt.opaque, inherit: tt.inherit}
			e := New(c)
			e.BlendMode = tt.blend
			if got := e.CanInheritOpacity(); got != tt.want {
				t.Errorf("CanInheritOpacity() = %v, want %v", got, tt.want)
			}
			if got := e.SetInheritedOpacity(0.5); got != tt.want {
				t.Errorf("SetInheritedOpacity() = %v, want %v", got, tt.want)
			}
			if e.BlendMode != tt.wantMode {
				t.Errorf("BlendMode = %v, want %v", e.BlendMode, tt.wantMode)
			}
			if tt.want && c.opacity != 0.5 {
				t.Errorf("inherited opacity = %v, want 0.5", c.opacity)
			}
		})
	}
}

func TestEntityNilContents(t *testing.T) {
	e := New(nil)
	if _, ok := e.Coverage(); ok {
		t.Error("Coverage() ok = true for nil contents")
	}
	if e.CanInheritOpacity() {
		t.Error("CanInheritOpacity() = true for nil contents")
	}
	if err := e.Render(nil, nil); err != nil {
		t.Errorf("Render() error = %v", err)
	}
}

func TestShaderClipDepth(t *testing.T) {
	tests := []struct {
		depth uint32
		want  float64
	}{
		{0, 0},
		{MaxClipDepth / 2, 0.5},
		{MaxClipDepth, 1},
		{MaxClipDepth * 4, 1},
	}
	for _, tt := range tests {
		e := &Entity{NewClipDepth: tt.depth}
		if got := e.ShaderClipDepth(); got != tt.want {
			t.Errorf("ShaderClipDepth(%d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestEntityRenderSetsCoverageHint(t *testing.T) {
	ctx := software.NewContext()
	p := newPass(t, ctx, 8, 6)
	c := &fakeContents{}
	e := New(c)
	if err := e.Render(NewContentContext(ctx), p); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	hint := geom.MakeXYWH(1, 1, 2, 2)
	c.SetCoverageHint(&hint)
	if err := e.Render(NewContentContext(ctx), p); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(c.hints) != 2 {
		t.Fatalf("rendered %d times, want 2", len(c.hints))
	}
	if c.hints[0] == nil || *c.hints[0] != geom.MakeXYWH(0, 0, 8, 6) {
		t.Errorf("first hint = %v, want target rect", c.hints[0])
	}
	if c.hints[1] == nil || *c.hints[1] != hint {
		t.Errorf("second hint = %v, want %v", c.hints[1], hint)
	}
}

func TestEntityCoverageTransformed(t *testing.T) {
	e := New(&fakeContents{coverage: geom.RectPtr(geom.MakeXYWH(0, 0, 2, 2))})
	e.Transform = geom.Translate(3, 4).Multiply(geom.Scale(2, 2))
	got, ok := e.Coverage()
	if !ok || got != geom.MakeXYWH(3, 4, 4, 4) {
		t.Errorf("Coverage() = %v, %v, want %v", got, ok, geom.MakeXYWH(3, 4, 4, 4))
	}
}

func TestMakeSubpass(t *testing.T) {
	ctx := software.NewContext()
	r := NewContentContext(ctx)
	size := geom.ISize{Width: 4, Height: 4}
	target, err := r.MakeSubpass("Test", size, func(r *ContentContext, pass gpu.RenderPass) error {
		return Command{
			Label:    "Fill",
			Pipeline: r.Pipeline(gpu.PipelineSolidFill, OptionsFromPass(pass)),
			Vertices: gpu.QuadStrip(geom.MakeXYWH(0, 0, 2, 4)),
			Bindings: gpu.Bindings{
				Frame:    gpu.FrameInfo{MVP: geom.Identity()},
				Fragment: gpu.FragmentInfo{Color: geom.Red, Alpha: 1},
			},
		}.Encode(pass)
	}, false, 3)
	if err != nil {
		t.Fatalf("MakeSubpass() error = %v", err)
	}
	tex := target.RenderTargetTexture()
	if got := tex.Size(); got != size {
		t.Errorf("Size() = %v, want %v", got, size)
	}
	if got, _ := software.ReadColor(tex, 0, 0); !got.ApproxEqual(geom.Red, 1e-9) {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got, _ := software.ReadColor(tex, 3, 0); !got.ApproxEqual(geom.BlackTransparent, 1e-9) {
		t.Errorf("pixel (3,0) = %v, want transparent", got)
	}
	if st, ok := tex.(*software.Texture); !ok || st.MipLevels() != 3 {
		t.Errorf("mip levels of %T, want 3 levels", tex)
	}
}

func TestMakeSubpassRecordsBlit(t *testing.T) {
	rec := recording.New(software.NewContext())
	r := NewContentContext(rec)
	noop := func(*ContentContext, gpu.RenderPass) error { return nil }
	if _, err := r.MakeSubpass("Mips", geom.ISize{Width: 8, Height: 8}, noop, false, 4); err != nil {
		t.Fatalf("MakeSubpass() error = %v", err)
	}
	got := rec.Recording()
	if n := len(got.RenderPasses()); n != 1 {
		t.Errorf("render passes = %d, want 1", n)
	}
	if n := len(got.BlitPasses()); n != 1 {
		t.Errorf("blit passes = %d, want 1", n)
	}
}

func TestMakeSubpassFailures(t *testing.T) {
	noop := func(*ContentContext, gpu.RenderPass) error { return nil }
	boom := errors.New("boom")
	tests := []struct {
		name string
		opts []recording.Option
		fn   SubpassCallback
		want error
	}{
		{"command buffer", []recording.Option{recording.FailCommandBufferAfter(0)}, noop, recording.ErrInjected},
		{"texture", []recording.Option{recording.FailTextureAllocationAfter(0)}, noop, recording.ErrInjected},
		{"callback", nil, func(*ContentContext, gpu.RenderPass) error { return boom }, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewContentContext(recording.New(software.NewContext(), tt.opts...))
			_, err := r.MakeSubpass("Fail", geom.ISize{Width: 2, Height: 2}, tt.fn, false, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("MakeSubpass() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPipelineVariants(t *testing.T) {
	ctx := software.NewContext()
	r := NewContentContext(ctx)
	p := newPass(t, ctx, 2, 2)
	opts := OptionsFromPass(p)
	a := r.Pipeline(gpu.PipelineSolidFill, opts)
	b := r.Pipeline(gpu.PipelineSolidFill, opts)
	if a != b {
		t.Errorf("Pipeline() = %+v then %+v", a, b)
	}
	opts.BlendMode = geom.BlendModeSource
	r.Pipeline(gpu.PipelineSolidFill, opts)
	if got := r.PipelineVariants(); got != 2 {
		t.Errorf("PipelineVariants() = %d, want 2", got)
	}
	if a.StencilMode != gpu.StencilClipCompare || !a.HasStencilAttachment {
		t.Errorf("Pipeline() stencil = %v/%v, want ClipCompare with attachment", a.StencilMode, a.HasStencilAttachment)
	}
}

func TestOptionsWithoutStencil(t *testing.T) {
	ctx := software.NewContext()
	rt, err := gpu.CreateRenderTarget(ctx, "plain", gpu.RenderTargetConfig{Size: geom.ISize{Width: 2, Height: 2}})
	if err != nil {
		t.Fatalf("CreateRenderTarget() error = %v", err)
	}
	cb, _ := ctx.CreateCommandBuffer()
	p, err := cb.CreateRenderPass(rt)
	if err != nil {
		t.Fatalf("CreateRenderPass() error = %v", err)
	}
	e := New(nil)
	e.BlendMode = geom.BlendModePlus
	o := OptionsFromPassAndEntity(p, e)
	if o.StencilMode != gpu.StencilIgnore {
		t.Errorf("StencilMode = %v, want %v", o.StencilMode, gpu.StencilIgnore)
	}
	if o.BlendMode != geom.BlendModePlus {
		t.Errorf("BlendMode = %v, want %v", o.BlendMode, geom.BlendModePlus)
	}
}
