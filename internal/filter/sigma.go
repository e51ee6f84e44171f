package filter

import "math"

// KernelRadiusPerSigma converts a Gaussian sigma into the blur radius used
// for padding and coverage expansion.
const KernelRadiusPerSigma = 1.73205080757

// MaxSigma bounds the sigma a blur is evaluated at.
const MaxSigma = 500

// BlurRequiredMipCount is the number of mip levels a backdrop blur asks its
// parent pass to produce.
const BlurRequiredMipCount = 4

// SigmaToRadius returns the blur radius for sigma.
// Sigmas at or below 0.5 produce no blur.
func SigmaToRadius(sigma float64) float64 {
	if sigma > 0.5 {
		return (sigma - 0.5) * KernelRadiusPerSigma
	}
	return 0
}

// RadiusToSigma is the inverse of SigmaToRadius for positive radii.
func RadiusToSigma(radius float64) float64 {
	if radius > 0 {
		return radius/KernelRadiusPerSigma + 0.5
	}
	return 0
}

// ScaleSigma damps large sigmas so very wide blurs stay visually close to
// other renderers. The input is clamped to MaxSigma.
func ScaleSigma(sigma float64) float64 {
	const (
		a = 3.4e-06
		b = -3.4e-3
		c = 1.0
	)
	clamped := math.Min(sigma, MaxSigma)
	return clamped * (c + b*clamped + a*clamped*clamped)
}

// BlurPadding returns the integral padding a blur of sigma needs on each
// side of its input.
func BlurPadding(sigma float64) float64 {
	return math.Ceil(SigmaToRadius(ScaleSigma(sigma)))
}
