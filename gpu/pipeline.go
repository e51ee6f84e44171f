// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/gputypes"
)

// PipelineKind names a fixed-function shading program.
type PipelineKind uint8

const (
	PipelineSolidFill PipelineKind = iota
	PipelineTexture
	PipelineGradient
	PipelineRuntimeEffect
	PipelineGlyphAtlas
	PipelineClip
	PipelineCheckerboard
	PipelineGaussianBlur
	PipelineColorMatrix
	PipelineLinearToSRGB
	PipelineSRGBToLinear
	PipelineAdvancedBlend
	PipelineFramebufferBlend
)

var pipelineNames = [...]string{
	PipelineSolidFill:        "SolidFill",
	PipelineTexture:          "Texture",
	PipelineGradient:         "Gradient",
	PipelineRuntimeEffect:    "RuntimeEffect",
	PipelineGlyphAtlas:       "GlyphAtlas",
	PipelineClip:             "Clip",
	PipelineCheckerboard:     "Checkerboard",
	PipelineGaussianBlur:     "GaussianBlur",
	PipelineColorMatrix:      "ColorMatrix",
	PipelineLinearToSRGB:     "LinearToSRGB",
	PipelineSRGBToLinear:     "SRGBToLinear",
	PipelineAdvancedBlend:    "AdvancedBlend",
	PipelineFramebufferBlend: "FramebufferBlend",
}

// String returns the pipeline name.
func (k PipelineKind) String() string {
	if int(k) < len(pipelineNames) {
		return pipelineNames[k]
	}
	return "Unknown"
}

// StencilMode selects stencil test and write behavior. Clips form a height
// map in the stencil buffer: the reference value is the entity's clip depth.
type StencilMode uint8

const (
	// StencilClipCompare draws where stencil == ref. Default for draws.
	StencilClipCompare StencilMode = iota
	// StencilIgnore disables the stencil test.
	StencilIgnore
	// StencilClipIncrement increments the stencil where stencil == ref.
	StencilClipIncrement
	// StencilClipDecrement decrements the stencil where stencil == ref.
	StencilClipDecrement
	// StencilClipRestore sets the stencil to ref where stencil > ref.
	StencilClipRestore
)

// String returns the mode name.
func (m StencilMode) String() string {
	switch m {
	case StencilClipCompare:
		return "ClipCompare"
	case StencilIgnore:
		return "Ignore"
	case StencilClipIncrement:
		return "ClipIncrement"
	case StencilClipDecrement:
		return "ClipDecrement"
	case StencilClipRestore:
		return "ClipRestore"
	default:
		return "Unknown"
	}
}

// Compare returns the stencil compare function, evaluated as
// "ref <op> stored", as in WebGPU.
func (m StencilMode) Compare() gputypes.CompareFunction {
	switch m {
	case StencilIgnore:
		return gputypes.CompareFunctionAlways
	case StencilClipRestore:
		return gputypes.CompareFunctionLess
	default:
		return gputypes.CompareFunctionEqual
	}
}

// StencilOp is the write performed on pixels that pass the stencil test.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilIncrementClamp
	StencilDecrementClamp
	StencilReplace
)

// PassOp returns the stencil write for pixels that pass the test.
func (m StencilMode) PassOp() StencilOp {
	switch m {
	case StencilClipIncrement:
		return StencilIncrementClamp
	case StencilClipDecrement:
		return StencilDecrementClamp
	case StencilClipRestore:
		return StencilReplace
	default:
		return StencilKeep
	}
}

// CompareStencil evaluates f as "ref <op> stored".
func CompareStencil(f gputypes.CompareFunction, ref, stored uint32) bool {
	switch f {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return ref < stored
	case gputypes.CompareFunctionEqual:
		return ref == stored
	case gputypes.CompareFunctionLessEqual:
		return ref <= stored
	case gputypes.CompareFunctionGreater:
		return ref > stored
	case gputypes.CompareFunctionNotEqual:
		return ref != stored
	case gputypes.CompareFunctionGreaterEqual:
		return ref >= stored
	default:
		return true
	}
}

// Primitive is the vertex assembly mode.
type Primitive uint8

const (
	PrimitiveTriangle Primitive = iota
	PrimitiveTriangleStrip
)

// PipelineDescriptor selects the pipeline variant for a draw.
type PipelineDescriptor struct {
	Kind                 PipelineKind
	BlendMode            geom.BlendMode
	StencilMode          StencilMode
	Primitive            Primitive
	SampleCount          int
	ColorFormat          gputypes.TextureFormat
	HasStencilAttachment bool
}

// VertexBuffer holds vertices in local coordinates. UVs is either empty or
// parallel to Positions.
type VertexBuffer struct {
	Positions []geom.Point
	UVs       []geom.Point
	Primitive Primitive
}

// VertexCount returns the number of vertices.
func (b VertexBuffer) VertexCount() int {
	return len(b.Positions)
}

// Triangles expands the buffer into a triangle list of vertex indices.
func (b VertexBuffer) Triangles() [][3]int {
	n := len(b.Positions)
	var tris [][3]int
	switch b.Primitive {
	case PrimitiveTriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				tris = append(tris, [3]int{i, i + 1, i + 2})
			} else {
				tris = append(tris, [3]int{i + 1, i, i + 2})
			}
		}
	default:
		for i := 0; i+2 < n; i += 3 {
			tris = append(tris, [3]int{i, i + 1, i + 2})
		}
	}
	return tris
}

// QuadStrip returns a triangle strip covering r.
func QuadStrip(r geom.Rect) VertexBuffer {
	return VertexBuffer{
		Positions: []geom.Point{
			{X: r.MinX, Y: r.MinY},
			{X: r.MaxX, Y: r.MinY},
			{X: r.MinX, Y: r.MaxY},
			{X: r.MaxX, Y: r.MaxY},
		},
		Primitive: PrimitiveTriangleStrip,
	}
}

// TexturedQuadStrip returns a triangle strip covering r with UVs spanning
// uv.
func TexturedQuadStrip(r, uv geom.Rect) VertexBuffer {
	vb := QuadStrip(r)
	vb.UVs = []geom.Point{
		{X: uv.MinX, Y: uv.MinY},
		{X: uv.MaxX, Y: uv.MinY},
		{X: uv.MinX, Y: uv.MaxY},
		{X: uv.MaxX, Y: uv.MaxY},
	}
	return vb
}

// SamplerDescriptor selects texture filtering and addressing.
type SamplerDescriptor struct {
	Linear bool
	// Decal samples outside [0,1] as transparent black instead of clamping.
	Decal bool
}

// GradientKind selects the gradient evaluation.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientSweep
)

// TileMode says how a gradient extends beyond its stops.
type TileMode uint8

const (
	TileClamp TileMode = iota
	TileRepeat
	TileMirror
	TileDecal
)

// GradientStop is one color stop, straight alpha.
type GradientStop struct {
	Offset float64
	Color  geom.Color
}

// GradientInfo parameterizes PipelineGradient. Points are in the local
// space of the effect transform.
type GradientInfo struct {
	Kind       GradientKind
	Start, End geom.Point
	Center     geom.Point
	Radius     float64
	// StartAngle and EndAngle are in radians for sweep gradients.
	StartAngle, EndAngle float64
	Stops                []GradientStop
	TileMode             TileMode
	// EffectTransform maps local space into gradient space.
	EffectTransform geom.Matrix
}

// EffectFunc shades a pixel of a runtime effect. p is in local coordinates.
// The result is straight alpha.
type EffectFunc func(p geom.Point) geom.Color

// FrameInfo holds per-draw vertex uniforms.
type FrameInfo struct {
	// MVP maps local coordinates to target pixel coordinates.
	MVP geom.Matrix
	// Depth is the shader clip depth in [0, 1].
	Depth float64
}

// FragmentInfo holds per-draw fragment uniforms. Which fields apply depends
// on the pipeline kind.
type FragmentInfo struct {
	// Color is premultiplied.
	Color   geom.Color
	Alpha   float64
	Texture Texture
	// Texture2 is the second input of two-input pipelines such as
	// AdvancedBlend.
	Texture2 Texture
	Sampler  SamplerDescriptor
	// TextureTransform maps local coordinates to UV space of Texture when
	// the vertex buffer carries no UVs.
	TextureTransform  geom.Matrix
	Texture2Transform geom.Matrix
	ColorMatrix       [20]float64
	Gradient          *GradientInfo
	Effect            EffectFunc
	// BlurDirection is the unit step in UV space, BlurSigma in pixels.
	BlurDirection geom.Point
	BlurSigma     float64
	BlurRadius    float64
	// BlendMode is the advanced blend for AdvancedBlend and
	// FramebufferBlend.
	BlendMode geom.BlendMode
	// SquareSize and Color2 parameterize the checkerboard.
	SquareSize float64
	Color2     geom.Color
	// ForegroundColor replaces the second input of AdvancedBlend when
	// HasForeground is set.
	ForegroundColor geom.Color
	HasForeground   bool
}

// Bindings are the uniforms of one draw.
type Bindings struct {
	Frame    FrameInfo
	Fragment FragmentInfo
}
