package geom

import (
	"math"
	"testing"
)

func matrixApproxEqual(a, b Matrix, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestMatrix_MultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if got != Pt(12, 2) {
		t.Errorf("TransformPoint() = %v, want (12, 2)", got)
	}
}

func TestMatrix_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(3, -7)},
		{"scale", Scale(2, 0.5)},
		{"rotate", RotateZ(0.3)},
		{"composite", Translate(4, 5).Multiply(RotateZ(1)).Multiply(Scale(3, 2)).Multiply(Skew(0.2, 0.1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Multiply(tt.m.Invert())
			if !matrixApproxEqual(got, Identity(), 1e-9) {
				t.Errorf("m * m.Invert() = %v, want identity", got)
			}
		})
	}
	if got := Scale(0, 1).Invert(); got != (Matrix{}) {
		t.Errorf("singular Invert() = %v, want zero", got)
	}
}

func TestMatrix_Predicates(t *testing.T) {
	tests := []struct {
		name            string
		m               Matrix
		translationOnly bool
		scaleOnly       bool
	}{
		{"identity", Identity(), true, true},
		{"translate", Translate(1, 2), true, true},
		{"scale", Scale(2, 3), false, true},
		{"rotate", RotateZ(math.Pi / 4), false, false},
		{"skew", Skew(0.5, 0), false, false},
	}
	for _, tt := range tests {
		if got := tt.m.IsTranslationOnly(); got != tt.translationOnly {
			t.Errorf("%s: IsTranslationOnly() = %v, want %v", tt.name, got, tt.translationOnly)
		}
		if got := tt.m.IsTranslationScaleOnly(); got != tt.scaleOnly {
			t.Errorf("%s: IsTranslationScaleOnly() = %v, want %v", tt.name, got, tt.scaleOnly)
		}
	}
}

func TestMatrix_Basis(t *testing.T) {
	m := Translate(5, 6).Multiply(Scale(2, 3))
	if got := m.Basis(); got != Scale(2, 3) {
		t.Errorf("Basis() = %v, want %v", got, Scale(2, 3))
	}
	if got := m.MaxBasisLengthXY(); got != 3 {
		t.Errorf("MaxBasisLengthXY() = %v, want 3", got)
	}
	if got := m.Translation(); got != Pt(5, 6) {
		t.Errorf("Translation() = %v, want (5, 6)", got)
	}
}
