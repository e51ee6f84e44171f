// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend is a registry of gpu.Context implementations.
//
// Backend packages register a factory from init, so importing one for its
// side effect makes it available by name:
//
//	import _ "github.com/gogpu/compositor/backend/software"
//
//	ctx, err := backend.New(backend.Software, backend.Config{MSAA: true})
//
// Default picks the preferred registered backend.
package backend
