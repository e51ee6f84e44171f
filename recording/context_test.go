package recording

import (
	"errors"
	"testing"

	"github.com/gogpu/compositor/backend/software"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
)

func TestRecordsPassesAndCommands(t *testing.T) {
	rec := New(software.NewContext())
	rt, err := gpu.CreateRenderTarget(rec, "Root", gpu.RenderTargetConfig{
		Size:       geom.ISize{Width: 8, Height: 8},
		HasStencil: true,
	})
	if err != nil {
		t.Fatalf("CreateRenderTarget() error = %v", err)
	}
	rt.Color.ClearColor = gpu.ClearColor(geom.Red)

	cb, err := rec.CreateCommandBuffer()
	if err != nil {
		t.Fatalf("CreateCommandBuffer() error = %v", err)
	}
	p, err := cb.CreateRenderPass(rt)
	if err != nil {
		t.Fatalf("CreateRenderPass() error = %v", err)
	}
	p.SetLabel("EntityPass")
	p.SetPipeline(gpu.PipelineDescriptor{Kind: gpu.PipelineSolidFill, StencilMode: gpu.StencilClipCompare})
	p.SetStencilReference(2)
	p.SetVertexBuffer(gpu.QuadStrip(geom.MakeXYWH(0, 0, 4, 4)))
	p.SetCommandLabel("Solid Fill")
	if err := p.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	p.SetPipeline(gpu.PipelineDescriptor{Kind: gpu.PipelineClip, StencilMode: gpu.StencilClipIncrement})
	if err := p.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if err := p.EncodeCommands(); err != nil {
		t.Fatalf("EncodeCommands() error = %v", err)
	}
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	r := rec.Recording()
	passes := r.RenderPasses()
	if len(passes) != 1 {
		t.Fatalf("len(RenderPasses()) = %d, want 1", len(passes))
	}
	got := passes[0]
	if got.Label != "EntityPass" || !got.HasStencil || got.Size != (geom.ISize{Width: 8, Height: 8}) {
		t.Errorf("pass = %+v", got)
	}
	if got.ColorLoad != gpu.LoadClear || got.ClearColor != geom.Red {
		t.Errorf("load = %v clear = %v, want Clear %v", got.ColorLoad, got.ClearColor, geom.Red)
	}
	if !got.Encoded || !r.Buffers[0].Submitted {
		t.Error("pass not encoded or buffer not submitted")
	}

	want := []Command{
		{Label: "Solid Fill", Pipeline: gpu.PipelineSolidFill, StencilMode: gpu.StencilClipCompare, StencilRef: 2, VertexCount: 4},
		{Pipeline: gpu.PipelineClip, StencilMode: gpu.StencilClipIncrement, StencilRef: 2, VertexCount: 4},
	}
	cmds := r.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("len(Commands()) = %d, want %d", len(cmds), len(want))
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Errorf("Commands()[%d] = %+v, want %+v", i, cmds[i], want[i])
		}
	}
	if n := len(r.CommandsWith(gpu.PipelineClip)); n != 1 {
		t.Errorf("len(CommandsWith(Clip)) = %d, want 1", n)
	}
	if rec.TextureAllocations() != 2 {
		t.Errorf("TextureAllocations() = %d, want 2", rec.TextureAllocations())
	}
}

func TestRecordsBlits(t *testing.T) {
	rec := New(software.NewContext())
	rt, err := gpu.CreateRenderTarget(rec, "Blit", gpu.RenderTargetConfig{
		Size:     geom.ISize{Width: 4, Height: 4},
		MipCount: 2,
	})
	if err != nil {
		t.Fatalf("CreateRenderTarget() error = %v", err)
	}
	cb, _ := rec.CreateCommandBuffer()
	bp, err := cb.CreateBlitPass()
	if err != nil {
		t.Fatalf("CreateBlitPass() error = %v", err)
	}
	if err := bp.GenerateMipmap(rt.Color.Texture); err != nil {
		t.Fatalf("GenerateMipmap() error = %v", err)
	}
	_ = bp.EncodeCommands()

	blits := rec.Recording().BlitPasses()
	if len(blits) != 1 || len(blits[0].Blits) != 1 || blits[0].Blits[0].Op != BlitGenerateMipmap {
		t.Errorf("BlitPasses() = %+v, want one mipmap blit", blits)
	}
}

func TestFailCommandBufferAfter(t *testing.T) {
	rec := New(software.NewContext(), FailCommandBufferAfter(1))
	if _, err := rec.CreateCommandBuffer(); err != nil {
		t.Fatalf("first CreateCommandBuffer() error = %v", err)
	}
	if _, err := rec.CreateCommandBuffer(); !errors.Is(err, ErrInjected) {
		t.Errorf("second CreateCommandBuffer() error = %v, want ErrInjected", err)
	}
}

func TestFailTextureAllocationAfter(t *testing.T) {
	tests := []struct {
		name    string
		after   int
		wantErr bool
	}{
		{"disabled", -1, false},
		{"first", 0, true},
		{"stencil", 1, true},
		{"enough", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New(software.NewContext(), FailTextureAllocationAfter(tt.after))
			_, err := gpu.CreateRenderTarget(rec, "T", gpu.RenderTargetConfig{
				Size:       geom.ISize{Width: 2, Height: 2},
				HasStencil: true,
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateRenderTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInjected) {
				t.Errorf("error = %v, want ErrInjected", err)
			}
		})
	}
}

func TestPassType(t *testing.T) {
	tests := []struct {
		t    PassType
		want string
	}{
		{PassRender, "Render"},
		{PassBlit, "Blit"},
		{PassType(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("PassType(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}
