package filter

import (
	"math"
	"testing"
)

func TestSigmaToRadius(t *testing.T) {
	tests := []struct {
		name  string
		sigma float64
		want  float64
	}{
		{"zero", 0, 0},
		{"half", 0.5, 0},
		{"one", 1, 0.5 * KernelRadiusPerSigma},
		{"twenty", 20, 19.5 * KernelRadiusPerSigma},
		{"negative", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SigmaToRadius(tt.sigma); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SigmaToRadius(%v) = %v, want %v", tt.sigma, got, tt.want)
			}
		})
	}
}

func TestRadiusToSigmaInverse(t *testing.T) {
	for _, s := range []float64{0.75, 1, 5, 20, 100} {
		got := RadiusToSigma(SigmaToRadius(s))
		if math.Abs(got-s) > 1e-9 {
			t.Errorf("RadiusToSigma(SigmaToRadius(%v)) = %v", s, got)
		}
	}
}

func TestScaleSigma(t *testing.T) {
	if got := ScaleSigma(0); got != 0 {
		t.Errorf("ScaleSigma(0) = %v, want 0", got)
	}
	// Small sigmas are nearly unchanged.
	if got := ScaleSigma(1); math.Abs(got-1) > 0.01 {
		t.Errorf("ScaleSigma(1) = %v, want ~1", got)
	}
	// The damping factor at the clamp is 0.15.
	want := 500 * (1 - 3.4e-3*500 + 3.4e-6*500*500)
	if got := ScaleSigma(500); math.Abs(got-want) > 1e-9 {
		t.Errorf("ScaleSigma(500) = %v, want %v", got, want)
	}
	if got := ScaleSigma(99999); math.Abs(got-want) > 1e-9 {
		t.Errorf("ScaleSigma(99999) = %v, want clamp value %v", got, want)
	}
}

func TestScaleSigmaShape(t *testing.T) {
	// The damping polynomial has turning points near 219 and 448.
	tests := []struct {
		name       string
		start, end float64
		increasing bool
	}{
		{"rising", 1, 219, true},
		{"dip", 220, 448, false},
		{"rising to clamp", 449, MaxSigma, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := ScaleSigma(tt.start - 1)
			for s := tt.start; s <= tt.end; s++ {
				got := ScaleSigma(s)
				if (got > prev) != tt.increasing {
					t.Fatalf("ScaleSigma(%v) = %v, ScaleSigma(%v) = %v, want increasing %v",
						s, got, s-1, prev, tt.increasing)
				}
				prev = got
			}
		})
	}
}

func TestBlurPadding(t *testing.T) {
	sigma := 20.0
	want := math.Ceil(SigmaToRadius(ScaleSigma(sigma)))
	if got := BlurPadding(sigma); got != want {
		t.Errorf("BlurPadding(%v) = %v, want %v", sigma, got, want)
	}
	if got := BlurPadding(0.2); got != 0 {
		t.Errorf("BlurPadding(0.2) = %v, want 0", got)
	}
}
