// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"testing"

	"github.com/gogpu/compositor/backend"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

const eps = 1e-6

func newTarget(t *testing.T, ctx *Context, w, h int, cfg gpu.RenderTargetConfig) gpu.RenderTarget {
	t.Helper()
	cfg.Size = geom.ISize{Width: w, Height: h}
	rt, err := gpu.CreateRenderTarget(ctx, "test", cfg)
	if err != nil {
		t.Fatalf("CreateRenderTarget() error = %v", err)
	}
	return rt
}

// run encodes one pass with the given draws and submits it.
func run(t *testing.T, ctx *Context, rt gpu.RenderTarget, draw func(p gpu.RenderPass)) {
	t.Helper()
	cb, err := ctx.CreateCommandBuffer()
	if err != nil {
		t.Fatalf("CreateCommandBuffer() error = %v", err)
	}
	p, err := cb.CreateRenderPass(rt)
	if err != nil {
		t.Fatalf("CreateRenderPass() error = %v", err)
	}
	draw(p)
	if err := p.EncodeCommands(); err != nil {
		t.Fatalf("EncodeCommands() error = %v", err)
	}
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func solid(p gpu.RenderPass, r geom.Rect, c geom.Color, mode gpu.StencilMode, ref uint32) {
	p.SetPipeline(gpu.PipelineDescriptor{
		Kind:        gpu.PipelineSolidFill,
		BlendMode:   geom.BlendModeSourceOver,
		StencilMode: mode,
	})
	p.SetStencilReference(ref)
	p.SetVertexBuffer(gpu.QuadStrip(r))
	p.Bind(gpu.Bindings{
		Frame:    gpu.FrameInfo{MVP: geom.Identity()},
		Fragment: gpu.FragmentInfo{Color: c.Premultiply(), Alpha: 1},
	})
	_ = p.Draw()
}

func pixel(t *testing.T, tex gpu.Texture, x, y int) geom.Color {
	t.Helper()
	c, err := ReadColor(tex, x, y)
	if err != nil {
		t.Fatalf("ReadColor() error = %v", err)
	}
	return c
}

func TestRegistered(t *testing.T) {
	ctx, err := backend.New(backend.Software, backend.Config{MSAA: true})
	if err != nil {
		t.Fatalf("backend.New() error = %v", err)
	}
	if !ctx.Capabilities().SupportsOffscreenMSAA {
		t.Error("SupportsOffscreenMSAA = false, want true")
	}
	if ctx.BackendType() != gpu.BackendSoftware {
		t.Errorf("BackendType() = %v, want %v", ctx.BackendType(), gpu.BackendSoftware)
	}
}

func TestClear(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 4, 4, gpu.RenderTargetConfig{})
	rt.Color.ClearColor = gpu.ClearColor(geom.Red.Premultiply())
	run(t, ctx, rt, func(gpu.RenderPass) {})

	if got := pixel(t, rt.Color.Texture, 3, 3); !got.ApproxEqual(geom.Red, eps) {
		t.Errorf("pixel = %v, want %v", got, geom.Red)
	}
	if s := ctx.Stats(); s.RenderPasses != 1 || s.Draws != 0 {
		t.Errorf("Stats() = %+v, want 1 pass and 0 draws", s)
	}
}

func TestLoadKeepsContents(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 4, 4, gpu.RenderTargetConfig{})
	rt.Color.ClearColor = gpu.ClearColor(geom.Blue)
	run(t, ctx, rt, func(gpu.RenderPass) {})

	rt.Color.LoadAction = gpu.LoadLoad
	run(t, ctx, rt, func(p gpu.RenderPass) {
		solid(p, geom.MakeXYWH(0, 0, 2, 4), geom.Green, gpu.StencilIgnore, 0)
	})

	tex := rt.Color.Texture
	if got := pixel(t, tex, 0, 0); !got.ApproxEqual(geom.Green, eps) {
		t.Errorf("left pixel = %v, want green", got)
	}
	if got := pixel(t, tex, 3, 0); !got.ApproxEqual(geom.Blue, eps) {
		t.Errorf("right pixel = %v, want blue", got)
	}
}

func TestSourceOver(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 2, 2, gpu.RenderTargetConfig{})
	rt.Color.ClearColor = gpu.ClearColor(geom.White)
	run(t, ctx, rt, func(p gpu.RenderPass) {
		solid(p, geom.MakeXYWH(0, 0, 2, 2), geom.RGBA(0, 0, 0, 0.5), gpu.StencilIgnore, 0)
	})
	want := geom.RGBA(0.5, 0.5, 0.5, 1)
	if got := pixel(t, rt.Color.Texture, 1, 1); !got.ApproxEqual(want, eps) {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestStencilClip(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 8, 8, gpu.RenderTargetConfig{HasStencil: true})
	run(t, ctx, rt, func(p gpu.RenderPass) {
		// Raise the left half to height 1, then draw at height 1 only.
		p.SetPipeline(gpu.PipelineDescriptor{
			Kind:        gpu.PipelineClip,
			BlendMode:   geom.BlendModeDestination,
			StencilMode: gpu.StencilClipIncrement,
		})
		p.SetStencilReference(0)
		p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(0, 0, 4, 8)))
		p.Bind(gpu.Bindings{Frame: gpu.FrameInfo{MVP: geom.Identity()}})
		_ = p.Draw()

		solid(p, geom.MakeXYWH(0, 0, 8, 8), geom.Red, gpu.StencilClipCompare, 1)
	})

	tex := rt.Color.Texture
	if got := pixel(t, tex, 1, 1); !got.ApproxEqual(geom.Red, eps) {
		t.Errorf("inside clip = %v, want red", got)
	}
	if got := pixel(t, tex, 6, 1); !got.ApproxEqual(geom.Color{}, eps) {
		t.Errorf("outside clip = %v, want transparent", got)
	}
	st := rt.Stencil.Texture.(*Texture)
	if got := st.Stencil(1, 1); got != 1 {
		t.Errorf("Stencil(1, 1) = %d, want 1", got)
	}
	if got := st.Stencil(6, 1); got != 0 {
		t.Errorf("Stencil(6, 1) = %d, want 0", got)
	}
}

func TestStencilRestore(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 4, 1, gpu.RenderTargetConfig{HasStencil: true})
	rt.Stencil.ClearStencil = 3
	run(t, ctx, rt, func(p gpu.RenderPass) {
		p.SetPipeline(gpu.PipelineDescriptor{
			Kind:        gpu.PipelineClip,
			BlendMode:   geom.BlendModeDestination,
			StencilMode: gpu.StencilClipRestore,
			Primitive:   gpu.PrimitiveTriangleStrip,
		})
		p.SetStencilReference(1)
		p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(0, 0, 2, 1)))
		p.Bind(gpu.Bindings{Frame: gpu.FrameInfo{MVP: geom.Identity()}})
		_ = p.Draw()
	})
	st := rt.Stencil.Texture.(*Texture)
	for x, want := range []uint32{1, 1, 3, 3} {
		if got := st.Stencil(x, 0); got != want {
			t.Errorf("Stencil(%d, 0) = %d, want %d", x, got, want)
		}
	}
}

func TestMSAAResolve(t *testing.T) {
	ctx := NewContext(WithMSAA(true))
	rt := newTarget(t, ctx, 4, 4, gpu.RenderTargetConfig{SampleCount: 4})
	run(t, ctx, rt, func(p gpu.RenderPass) {
		solid(p, geom.MakeXYWH(0, 0, 4, 4), geom.Cyan, gpu.StencilIgnore, 0)
	})
	if got := pixel(t, rt.Color.ResolveTexture, 2, 2); !got.ApproxEqual(geom.Cyan, eps) {
		t.Errorf("resolved pixel = %v, want cyan", got)
	}
}

func TestReadFromResolve(t *testing.T) {
	ctx := NewContext(WithMSAA(true), WithReadFromResolve(true))
	rt := newTarget(t, ctx, 2, 2, gpu.RenderTargetConfig{SampleCount: 4})
	rt.Color.ClearColor = gpu.ClearColor(geom.Blue)
	run(t, ctx, rt, func(gpu.RenderPass) {})

	if err := rt.Color.Texture.(*Texture).SetContents(make([]byte, 16)); err != nil {
		t.Fatalf("SetContents() error = %v", err)
	}
	rt.Color.LoadAction = gpu.LoadLoad
	run(t, ctx, rt, func(gpu.RenderPass) {})
	if got := pixel(t, rt.Color.ResolveTexture, 0, 0); !got.ApproxEqual(geom.Blue, eps) {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestTextureUpload(t *testing.T) {
	tests := []struct {
		name   string
		format gpu.TextureDescriptor
		data   []byte
		want   geom.Color
	}{
		{"rgba", desc(gpuRGBA), []byte{255, 0, 0, 255}, geom.Red},
		{"bgra", desc(gpuBGRA), []byte{255, 0, 0, 255}, geom.Blue},
		{"r8", desc(gpuR8), []byte{255}, geom.White},
	}
	ctx := NewContext()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := ctx.Allocator().CreateTexture(tt.format)
			if err != nil {
				t.Fatalf("CreateTexture() error = %v", err)
			}
			if err := tex.SetContents(tt.data); err != nil {
				t.Fatalf("SetContents() error = %v", err)
			}
			if got := pixel(t, tex, 0, 0); !got.ApproxEqual(tt.want, eps) {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetContentsSize(t *testing.T) {
	tex, err := NewContext().Allocator().CreateTexture(desc(gpuRGBA))
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := tex.SetContents([]byte{1, 2}); err == nil {
		t.Error("SetContents() with short data: error = nil")
	}
}

func TestTexturedDraw(t *testing.T) {
	ctx := NewContext()
	src, err := ctx.Allocator().CreateTexture(gpu.TextureDescriptor{
		Size: geom.ISize{Width: 2, Height: 1}, Format: gpuRGBA, MipCount: 1, SampleCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	_ = src.SetContents([]byte{255, 0, 0, 255, 0, 255, 0, 255})

	rt := newTarget(t, ctx, 4, 2, gpu.RenderTargetConfig{})
	run(t, ctx, rt, func(p gpu.RenderPass) {
		p.SetPipeline(gpu.PipelineDescriptor{Kind: gpu.PipelineTexture, BlendMode: geom.BlendModeSourceOver})
		p.SetVertexBuffer(gpu.TexturedQuadStrip(geom.MakeXYWH(0, 0, 4, 2), geom.MakeXYWH(0, 0, 1, 1)))
		p.Bind(gpu.Bindings{
			Frame:    gpu.FrameInfo{MVP: geom.Identity()},
			Fragment: gpu.FragmentInfo{Texture: src, Alpha: 1},
		})
		if err := p.Draw(); err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
	})
	if got := pixel(t, rt.Color.Texture, 0, 1); !got.ApproxEqual(geom.Red, eps) {
		t.Errorf("left = %v, want red", got)
	}
	if got := pixel(t, rt.Color.Texture, 3, 0); !got.ApproxEqual(geom.Green, eps) {
		t.Errorf("right = %v, want green", got)
	}
}

func TestCheckerboard(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 4, 4, gpu.RenderTargetConfig{})
	run(t, ctx, rt, func(p gpu.RenderPass) {
		p.SetPipeline(gpu.PipelineDescriptor{
			Kind:        gpu.PipelineCheckerboard,
			BlendMode:   geom.BlendModeSourceOver,
			StencilMode: gpu.StencilIgnore,
		})
		p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(0, 0, 4, 4)))
		p.Bind(gpu.Bindings{
			Frame:    gpu.FrameInfo{MVP: geom.Identity()},
			Fragment: gpu.FragmentInfo{Color: geom.Black, SquareSize: 2},
		})
		_ = p.Draw()
	})
	tests := []struct {
		x, y int
		want geom.Color
	}{
		{0, 0, geom.Black},
		{1, 1, geom.Black},
		{2, 0, geom.Color{}},
		{0, 2, geom.Color{}},
		{3, 3, geom.Black},
	}
	for _, tt := range tests {
		if got := pixel(t, rt.Color.Texture, tt.x, tt.y); !got.ApproxEqual(tt.want, eps) {
			t.Errorf("pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLinearGradient(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 10, 1, gpu.RenderTargetConfig{})
	run(t, ctx, rt, func(p gpu.RenderPass) {
		p.SetPipeline(gpu.PipelineDescriptor{Kind: gpu.PipelineGradient, BlendMode: geom.BlendModeSource})
		p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(0, 0, 10, 1)))
		p.Bind(gpu.Bindings{
			Frame: gpu.FrameInfo{MVP: geom.Identity()},
			Fragment: gpu.FragmentInfo{Alpha: 1, Gradient: &gpu.GradientInfo{
				Kind:            gpu.GradientLinear,
				Start:           geom.Pt(0, 0),
				End:             geom.Pt(10, 0),
				Stops:           []gpu.GradientStop{{Offset: 0, Color: geom.Black}, {Offset: 1, Color: geom.White}},
				EffectTransform: geom.Identity(),
			}},
		})
		_ = p.Draw()
	})
	// Pixel centre 4.5 sits at t = 0.45.
	want := geom.RGBA(0.45, 0.45, 0.45, 1)
	if got := pixel(t, rt.Color.Texture, 4, 0); !got.ApproxEqual(want, eps) {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestTileMode(t *testing.T) {
	tests := []struct {
		mode gpu.TileMode
		in   float64
		want float64
		ok   bool
	}{
		{gpu.TileClamp, 1.5, 1, true},
		{gpu.TileClamp, -1, 0, true},
		{gpu.TileRepeat, 1.25, 0.25, true},
		{gpu.TileMirror, 1.25, 0.75, true},
		{gpu.TileDecal, 1.25, 1.25, false},
		{gpu.TileDecal, 0.5, 0.5, true},
	}
	for _, tt := range tests {
		got, ok := applyTileMode(tt.in, tt.mode)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("applyTileMode(%v, %v) = %v, %v, want %v, %v", tt.in, tt.mode, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBlitAndMipmap(t *testing.T) {
	ctx := NewContext()
	a := newTarget(t, ctx, 4, 4, gpu.RenderTargetConfig{})
	a.Color.ClearColor = gpu.ClearColor(geom.Red)
	run(t, ctx, a, func(gpu.RenderPass) {})
	b := newTarget(t, ctx, 4, 4, gpu.RenderTargetConfig{MipCount: 3})

	cb, _ := ctx.CreateCommandBuffer()
	bp, err := cb.CreateBlitPass()
	if err != nil {
		t.Fatalf("CreateBlitPass() error = %v", err)
	}
	if err := bp.AddCopy(a.Color.Texture, b.Color.Texture); err != nil {
		t.Fatalf("AddCopy() error = %v", err)
	}
	if err := bp.GenerateMipmap(b.Color.Texture); err != nil {
		t.Fatalf("GenerateMipmap() error = %v", err)
	}
	if err := bp.EncodeCommands(); err != nil {
		t.Fatalf("EncodeCommands() error = %v", err)
	}
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	tex := b.Color.Texture.(*Texture)
	if tex.MipLevels() != 3 {
		t.Fatalf("MipLevels() = %d, want 3", tex.MipLevels())
	}
	if got := tex.levels[2].pix[0]; !got.ApproxEqual(geom.Red, eps) {
		t.Errorf("level 2 = %v, want red", got)
	}
	if ctx.Stats().BlitPasses != 1 {
		t.Errorf("BlitPasses = %d, want 1", ctx.Stats().BlitPasses)
	}
}

func TestBlitUnsupported(t *testing.T) {
	ctx := NewContext(WithTextureToTextureBlits(false))
	a := newTarget(t, ctx, 2, 2, gpu.RenderTargetConfig{})
	cb, _ := ctx.CreateCommandBuffer()
	bp, _ := cb.CreateBlitPass()
	if err := bp.AddCopy(a.Color.Texture, a.Color.Texture); !errors.Is(err, gpu.ErrUnsupported) {
		t.Errorf("AddCopy() error = %v, want ErrUnsupported", err)
	}
}

func TestFramebufferFetchRequired(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 2, 2, gpu.RenderTargetConfig{})
	cb, _ := ctx.CreateCommandBuffer()
	p, _ := cb.CreateRenderPass(rt)
	p.SetPipeline(gpu.PipelineDescriptor{Kind: gpu.PipelineFramebufferBlend})
	p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(0, 0, 2, 2)))
	p.Bind(gpu.Bindings{Fragment: gpu.FragmentInfo{Texture: rt.Color.Texture}})
	_ = p.Draw()
	_ = p.EncodeCommands()
	if err := cb.Submit(); !errors.Is(err, gpu.ErrUnsupported) {
		t.Errorf("Submit() error = %v, want ErrUnsupported", err)
	}
}

func TestDrawWithoutPipeline(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 2, 2, gpu.RenderTargetConfig{})
	cb, _ := ctx.CreateCommandBuffer()
	p, _ := cb.CreateRenderPass(rt)
	if err := p.Draw(); !errors.Is(err, gpu.ErrNoPipeline) {
		t.Errorf("Draw() error = %v, want ErrNoPipeline", err)
	}
	_ = p.EncodeCommands()
	if err := p.Draw(); !errors.Is(err, gpu.ErrEncoded) {
		t.Errorf("Draw() after encode error = %v, want ErrEncoded", err)
	}
}

func TestMaxTextureSize(t *testing.T) {
	ctx := NewContext(WithMaxTextureSize(16))
	_, err := ctx.Allocator().CreateTexture(gpu.TextureDescriptor{
		Size: geom.ISize{Width: 32, Height: 8}, Format: gpuRGBA, MipCount: 1, SampleCount: 1,
	})
	if !errors.Is(err, gpu.ErrAllocation) {
		t.Errorf("CreateTexture() error = %v, want ErrAllocation", err)
	}
}

func TestReadPixels(t *testing.T) {
	ctx := NewContext()
	rt := newTarget(t, ctx, 3, 2, gpu.RenderTargetConfig{})
	rt.Color.ClearColor = gpu.ClearColor(geom.RGBA(0, 0, 1, 0.5).Premultiply())
	run(t, ctx, rt, func(gpu.RenderPass) {})
	img, err := ReadPixels(rt.Color.Texture)
	if err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("Bounds() = %v, want 3x2", b)
	}
	c := img.RGBAAt(2, 1)
	if c.B != 128 || c.A != 128 || c.R != 0 {
		t.Errorf("RGBAAt() = %v, want {0 0 128 128}", c)
	}
}

func TestWorkersMatchSerial(t *testing.T) {
	scene := func(p gpu.RenderPass) {
		p.SetPipeline(gpu.PipelineDescriptor{
			Kind:        gpu.PipelineClip,
			BlendMode:   geom.BlendModeDestination,
			StencilMode: gpu.StencilClipIncrement,
		})
		p.SetStencilReference(0)
		p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(10, 0, 60, 96)))
		p.Bind(gpu.Bindings{Frame: gpu.FrameInfo{MVP: geom.Identity()}})
		_ = p.Draw()

		solid(p, geom.MakeXYWH(0, 0, 96, 96), geom.Red.WithAlpha(0.5), gpu.StencilClipCompare, 1)
		solid(p, geom.MakeXYWH(20, 20, 50, 50), geom.Blue.WithAlpha(0.5), gpu.StencilIgnore, 0)
		solid(p, geom.MakeXYWH(30, 5, 10, 80), geom.Green.WithAlpha(0.25), gpu.StencilIgnore, 0)
	}
	render := func(ctx *Context) gpu.RenderTarget {
		rt := newTarget(t, ctx, 96, 96, gpu.RenderTargetConfig{HasStencil: true})
		run(t, ctx, rt, scene)
		return rt
	}

	serial := NewContext()
	banded := NewContext(WithWorkers(3))
	defer banded.Close()
	a, b := render(serial), render(banded)

	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			if pa, pb := pixel(t, a.Color.Texture, x, y), pixel(t, b.Color.Texture, x, y); pa != pb {
				t.Fatalf("pixel (%d, %d) = %v with workers, want %v", x, y, pb, pa)
			}
		}
	}
	if s, p := serial.Stats().Fragments, banded.Stats().Fragments; s != p {
		t.Errorf("Fragments = %d with workers, want %d", p, s)
	}
	if err := banded.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
