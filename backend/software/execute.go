// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"math"

	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/internal/blend"
	"github.com/gogpu/compositor/internal/color"
	"github.com/gogpu/compositor/internal/filter"
	"github.com/gogpu/compositor/internal/parallel"
	"github.com/gogpu/compositor/internal/raster"
	"github.com/gogpu/gputypes"
)

// execute runs the pass at submit time: load, draw every command, store.
func (p *renderPass) execute() error {
	ctx := p.buffer.ctx
	ctx.stats.RenderPasses++

	ca := p.target.Color
	switch ca.LoadAction {
	case gpu.LoadClear:
		p.color.fill(gpu.ColorFromClear(ca.ClearColor))
	case gpu.LoadLoad:
		if p.resolve != nil && p.resolve != p.color && ctx.opts.caps.SupportsReadFromResolve {
			p.color.copyFrom(p.resolve)
		}
	}
	if p.stencil != nil && p.target.Stencil.LoadAction == gpu.LoadClear {
		p.stencil.fillStencil(p.target.Stencil.ClearStencil)
	}

	for i := range p.commands {
		if err := p.draw(&p.commands[i]); err != nil {
			return fmt.Errorf("%s: command %d %q: %w", p.label, i, p.commands[i].label, err)
		}
	}

	if ca.StoreAction.Resolves() && p.resolve != nil && p.resolve != p.color {
		p.resolve.copyFrom(p.color)
	}
	return nil
}

func (p *renderPass) draw(cmd *command) error {
	ctx := p.buffer.ctx
	ctx.stats.Draws++

	vb := cmd.vertices
	if len(vb.UVs) != 0 && len(vb.UVs) != len(vb.Positions) {
		return fmt.Errorf("%w: %d uvs for %d positions", gpu.ErrInvalidDescriptor, len(vb.UVs), len(vb.Positions))
	}
	desc := cmd.pipeline
	if desc.Kind == gpu.PipelineFramebufferBlend && !ctx.opts.caps.SupportsFramebufferFetch {
		return fmt.Errorf("%w: framebuffer fetch", gpu.ErrUnsupported)
	}
	if needsTexture(desc.Kind) && cmd.bindings.Fragment.Texture == nil {
		return fmt.Errorf("%w: %v without a texture", gpu.ErrInvalidDescriptor, desc.Kind)
	}

	mvp := cmd.bindings.Frame.MVP
	device := make([]geom.Point, len(vb.Positions))
	for i, pt := range vb.Positions {
		device[i] = mvp.TransformPoint(pt)
	}

	sh := &shader{
		pass:       p,
		cmd:        cmd,
		frag:       &cmd.bindings.Fragment,
		positions:  vb.Positions,
		uvs:        vb.UVs,
		compare:    desc.StencilMode.Compare(),
		op:         desc.StencilMode.PassOp(),
		useStencil: p.stencil != nil && desc.StencilMode != gpu.StencilIgnore,
		blend:      blend.FuncFor(desc.BlendMode),
	}
	if err := sh.bindTextures(); err != nil {
		return err
	}
	tris := vb.Triangles()
	bands := []parallel.Span{{Start: 0, End: sh.Height()}}
	if ctx.pool != nil {
		bands = parallel.Split(sh.Height(), ctx.pool.Workers(), minBandRows)
	}
	if len(bands) < 2 {
		ctx.stats.Fragments += shadeBand(*sh, device, tris, nil)
		return nil
	}

	// Every band replays all triangles in order, so each pixel sees the
	// same sequence of fragments as a serial draw.
	counts := make([]int, len(bands))
	work := make([]func(), len(bands))
	for i, b := range bands {
		band := geom.MakeLTRB(0, float64(b.Start), float64(sh.Width()), float64(b.End))
		work[i] = func() { counts[i] = shadeBand(*sh, device, tris, &band) }
	}
	ctx.pool.ExecuteAll(work)
	for _, n := range counts {
		ctx.stats.Fragments += n
	}
	return nil
}

// minBandRows is the smallest band worth a goroutine.
const minBandRows = 32

// shadeBand rasterizes tris into the rows of scissor, or the whole target
// when scissor is nil. sh is a copy owned by the caller.
func shadeBand(sh shader, device []geom.Point, tris [][3]int, scissor *geom.Rect) int {
	r := raster.NewRasterizer(&sh)
	if scissor != nil {
		r.SetScissor(*scissor)
	}
	n := 0
	for _, tri := range tris {
		sh.tri = tri
		n += r.Triangle(device[tri[0]], device[tri[1]], device[tri[2]])
	}
	return n
}

func needsTexture(k gpu.PipelineKind) bool {
	switch k {
	case gpu.PipelineTexture, gpu.PipelineGlyphAtlas, gpu.PipelineGaussianBlur,
		gpu.PipelineColorMatrix, gpu.PipelineLinearToSRGB, gpu.PipelineSRGBToLinear,
		gpu.PipelineAdvancedBlend, gpu.PipelineFramebufferBlend:
		return true
	}
	return false
}

// shader receives the fragments of one draw.
type shader struct {
	pass       *renderPass
	cmd        *command
	frag       *gpu.FragmentInfo
	positions  []geom.Point
	uvs        []geom.Point
	tri        [3]int
	compare    gputypes.CompareFunction
	op         gpu.StencilOp
	useStencil bool
	blend      blend.Func

	tex, tex2 *Texture
	kernel    []float64
}

func (s *shader) bindTextures() error {
	var ok bool
	if s.frag.Texture != nil {
		if s.tex, ok = s.frag.Texture.(*Texture); !ok {
			return fmt.Errorf("%w: foreign texture %T", gpu.ErrInvalidDescriptor, s.frag.Texture)
		}
	}
	if s.frag.Texture2 != nil {
		if s.tex2, ok = s.frag.Texture2.(*Texture); !ok {
			return fmt.Errorf("%w: foreign texture %T", gpu.ErrInvalidDescriptor, s.frag.Texture2)
		}
	}
	if s.cmd.pipeline.Kind == gpu.PipelineGaussianBlur {
		s.kernel = filter.CachedGaussianKernel(s.frag.BlurSigma)
	}
	return nil
}

func (s *shader) Width() int  { return s.pass.color.desc.Size.Width }
func (s *shader) Height() int { return s.pass.color.desc.Size.Height }

func (s *shader) Shade(f raster.Fragment) {
	idx := f.Y*s.pass.color.desc.Size.Width + f.X

	if s.useStencil {
		st := s.pass.stencil.stencil
		if !gpu.CompareStencil(s.compare, s.cmd.ref, st[idx]) {
			return
		}
		switch s.op {
		case gpu.StencilIncrementClamp:
			if st[idx] < 0xff {
				st[idx]++
			}
		case gpu.StencilDecrementClamp:
			if st[idx] > 0 {
				st[idx]--
			}
		case gpu.StencilReplace:
			st[idx] = s.cmd.ref
		}
	}

	pix := s.pass.color.levels[0].pix
	dst := pix[idx]
	pix[idx] = s.blend(dst, s.shade(f, dst))
}

// shade returns the premultiplied source color of a fragment.
func (s *shader) shade(f raster.Fragment, dst geom.Color) geom.Color {
	local := interpolate(s.positions, s.tri, f.Bary)
	fi := s.frag

	switch s.cmd.pipeline.Kind {
	case gpu.PipelineSolidFill:
		return fi.Color
	case gpu.PipelineClip:
		return geom.Color{}
	case gpu.PipelineCheckerboard:
		size := fi.SquareSize
		if size <= 0 {
			size = 12
		}
		x := math.Floor((float64(f.X) + 0.5) / size)
		y := math.Floor((float64(f.Y) + 0.5) / size)
		if int64(x+y)%2 == 0 {
			return fi.Color
		}
		return fi.Color2
	case gpu.PipelineGradient:
		if fi.Gradient == nil {
			return geom.Color{}
		}
		return evalGradient(fi.Gradient, local).Premultiply().Mul(fi.Alpha)
	case gpu.PipelineRuntimeEffect:
		if fi.Effect == nil {
			return geom.Color{}
		}
		return fi.Effect(local).Premultiply().Mul(fi.Alpha)
	}

	uv := s.uv(f, local)
	sample := s.tex.sample(uv, fi.Sampler)
	switch s.cmd.pipeline.Kind {
	case gpu.PipelineTexture:
		return sample.Mul(fi.Alpha)
	case gpu.PipelineGlyphAtlas:
		return fi.Color.Mul(sample.A)
	case gpu.PipelineGaussianBlur:
		return s.blur(uv)
	case gpu.PipelineColorMatrix:
		return filter.ColorMatrix(fi.ColorMatrix).Apply(sample.Unpremultiply()).Premultiply().Mul(fi.Alpha)
	case gpu.PipelineLinearToSRGB:
		return color.LinearToSRGBPremultiplied(sample).Mul(fi.Alpha)
	case gpu.PipelineSRGBToLinear:
		return color.SRGBToLinearPremultiplied(sample).Mul(fi.Alpha)
	case gpu.PipelineAdvancedBlend:
		src := fi.ForegroundColor
		if !fi.HasForeground {
			if s.tex2 == nil {
				return sample
			}
			src = s.tex2.sample(fi.Texture2Transform.TransformPoint(local), fi.Sampler)
		}
		return blend.Premultiplied(sample, src, fi.BlendMode).Mul(fi.Alpha)
	case gpu.PipelineFramebufferBlend:
		return blend.Premultiplied(dst, sample.Mul(fi.Alpha), fi.BlendMode)
	}
	return geom.Color{}
}

func (s *shader) uv(f raster.Fragment, local geom.Point) geom.Point {
	if len(s.uvs) != 0 {
		return interpolate(s.uvs, s.tri, f.Bary)
	}
	return s.frag.TextureTransform.TransformPoint(local)
}

// blur convolves along BlurDirection, one kernel tap per texel step.
func (s *shader) blur(uv geom.Point) geom.Color {
	half := len(s.kernel) / 2
	dir := s.frag.BlurDirection
	var sum geom.Color
	for i, w := range s.kernel {
		o := float64(i - half)
		p := geom.Point{X: uv.X + dir.X*o, Y: uv.Y + dir.Y*o}
		sum = sum.Add(s.tex.sample(p, s.frag.Sampler).Mul(w))
	}
	return sum.Mul(s.frag.Alpha)
}

func interpolate(v []geom.Point, tri [3]int, bary [3]float64) geom.Point {
	a, b, c := v[tri[0]], v[tri[1]], v[tri[2]]
	return geom.Point{
		X: a.X*bary[0] + b.X*bary[1] + c.X*bary[2],
		Y: a.Y*bary[0] + b.Y*bary[1] + c.Y*bary[2],
	}
}
