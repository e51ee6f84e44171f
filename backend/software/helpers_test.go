// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/gputypes"
)

const (
	gpuRGBA = gputypes.TextureFormatRGBA8Unorm
	gpuBGRA = gputypes.TextureFormatBGRA8Unorm
	gpuR8   = gputypes.TextureFormatR8Unorm
)

func desc(f gputypes.TextureFormat) gpu.TextureDescriptor {
	return gpu.TextureDescriptor{
		Size:        geom.ISize{Width: 1, Height: 1},
		Format:      f,
		MipCount:    1,
		SampleCount: 1,
	}
}
