package geom

import "testing"

func TestColor_PremultiplyRoundTrip(t *testing.T) {
	c := RGBA(0.2, 0.4, 0.6, 0.5)
	got := c.Premultiply()
	if !got.ApproxEqual(RGBA(0.1, 0.2, 0.3, 0.5), 1e-12) {
		t.Errorf("Premultiply() = %v", got)
	}
	if back := got.Unpremultiply(); !back.ApproxEqual(c, 1e-12) {
		t.Errorf("Unpremultiply() = %v, want %v", back, c)
	}
	if got := (Color{R: 1}).Unpremultiply(); got != (Color{}) {
		t.Errorf("Unpremultiply(zero alpha) = %v, want transparent", got)
	}
}

func TestColorHSB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, b float64
		want    Color
	}{
		{"red", 0, 1, 1, RGB(1, 0, 0)},
		{"green", 1.0 / 3, 1, 1, RGB(0, 1, 0)},
		{"blue", 2.0 / 3, 1, 1, RGB(0, 0, 1)},
		{"dim red", 0, 1, 0.4, RGB(0.4, 0, 0)},
		{"gray", 0.5, 0, 0.5, RGB(0.5, 0.5, 0.5)},
	}
	for _, tt := range tests {
		got := ColorHSB(tt.h, tt.s, tt.b, 1)
		if !got.ApproxEqual(tt.want, 1e-9) {
			t.Errorf("%s: ColorHSB() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBlendMode_Classification(t *testing.T) {
	if BlendModeSourceOver.IsAdvanced() || !BlendModeScreen.IsAdvanced() || BlendModeModulate.IsAdvanced() {
		t.Error("IsAdvanced() misclassifies the pipeline boundary")
	}
	destructive := map[BlendMode]bool{
		BlendModeClear: true, BlendModeSource: true, BlendModeSourceIn: true,
		BlendModeDestinationIn: true, BlendModeSourceOut: true, BlendModeDestinationOut: true,
		BlendModeDestinationATop: true, BlendModeXor: true, BlendModeModulate: true,
	}
	for m := BlendModeClear; m <= LastAdvancedBlendMode; m++ {
		if got := m.IsDestructive(); got != destructive[m] {
			t.Errorf("%v.IsDestructive() = %v, want %v", m, got, destructive[m])
		}
	}
	if BlendModeLuminosity.String() != "Luminosity" {
		t.Errorf("String() = %q", BlendModeLuminosity.String())
	}
}
