// Package filter holds the CPU-side math shared by the image filters:
// Gaussian sigma scaling and kernels, and 4x5 color matrices.
//
// The GPU-facing filter contents live in entity/contents; this package
// only computes numbers so it can be tested without a render backend.
package filter
