package geom

import (
	"math"
	"testing"
)

func TestRect_Intersection(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Rect
		want   Rect
		wantOK bool
	}{
		{"overlap", MakeXYWH(0, 0, 10, 10), MakeXYWH(5, 5, 10, 10), MakeLTRB(5, 5, 10, 10), true},
		{"contained", MakeXYWH(0, 0, 10, 10), MakeXYWH(2, 2, 3, 3), MakeXYWH(2, 2, 3, 3), true},
		{"touching edge", MakeXYWH(0, 0, 10, 10), MakeXYWH(10, 0, 5, 5), Rect{}, false},
		{"disjoint", MakeXYWH(0, 0, 10, 10), MakeXYWH(20, 20, 5, 5), Rect{}, false},
		{"maximum", MakeMaximum(), MakeXYWH(1, 2, 3, 4), MakeXYWH(1, 2, 3, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersection(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersection() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRect_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"zero width", MakeXYWH(0, 0, 0, 10), true},
		{"negative", MakeLTRB(10, 10, 0, 0), true},
		{"nan", Rect{MinX: math.NaN(), MaxX: 1, MaxY: 1}, true},
		{"unit", MakeXYWH(0, 0, 1, 1), false},
		{"maximum", MakeMaximum(), false},
	}
	for _, tt := range tests {
		if got := tt.r.IsEmpty(); got != tt.want {
			t.Errorf("%s: IsEmpty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRect_RoundOut(t *testing.T) {
	got := MakeLTRB(0.5, -1.2, 10.1, 3).RoundOut()
	want := MakeLTRB(0, -2, 11, 3)
	if got != want {
		t.Errorf("RoundOut() = %v, want %v", got, want)
	}
}

func TestRect_TransformBounds(t *testing.T) {
	r := MakeXYWH(0, 0, 10, 20)
	if got := r.TransformBounds(Translate(5, 5)); got != MakeXYWH(5, 5, 10, 20) {
		t.Errorf("TransformBounds(translate) = %v", got)
	}
	if got := r.TransformBounds(Scale(2, 3)); got != MakeXYWH(0, 0, 20, 60) {
		t.Errorf("TransformBounds(scale) = %v", got)
	}
	got := MakeXYWH(-1, -1, 2, 2).TransformBounds(RotateZ(math.Pi / 4))
	s := math.Sqrt2
	if math.Abs(got.MinX+s) > 1e-9 || math.Abs(got.MaxY-s) > 1e-9 {
		t.Errorf("TransformBounds(rotate) = %v, want +-%v", got, s)
	}
	if got := MakeMaximum().TransformBounds(Scale(2, 2)); !got.IsMaximum() {
		t.Errorf("TransformBounds(maximum) = %v, want maximum", got)
	}
}

func TestRect_Cutout(t *testing.T) {
	r := MakeXYWH(0, 0, 100, 100)
	tests := []struct {
		name   string
		o      Rect
		want   Rect
		wantOK bool
	}{
		{"full", MakeXYWH(-10, -10, 200, 200), Rect{}, false},
		{"top", MakeLTRB(-10, -10, 110, 40), MakeLTRB(0, 40, 100, 100), true},
		{"bottom", MakeLTRB(-10, 60, 110, 110), MakeLTRB(0, 0, 100, 60), true},
		{"left", MakeLTRB(-10, -10, 30, 110), MakeLTRB(30, 0, 100, 100), true},
		{"right", MakeLTRB(70, -10, 110, 110), MakeLTRB(0, 0, 70, 100), true},
		{"hole", MakeXYWH(40, 40, 10, 10), r, true},
	}
	for _, tt := range tests {
		got, ok := r.Cutout(tt.o)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%s: Cutout() = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	r := MakeXYWH(0, 0, 10, 10)
	if !r.Contains(MakeXYWH(0, 0, 10, 10)) {
		t.Error("Contains(self) = false, want true")
	}
	if r.Contains(MakeXYWH(0, 0, 10.5, 10)) {
		t.Error("Contains(larger) = true, want false")
	}
	if !r.Contains(Rect{}) {
		t.Error("Contains(empty) = false, want true")
	}
}

func TestOptionalHelpers(t *testing.T) {
	var acc *Rect
	acc = UnionOptional(acc, MakeXYWH(0, 0, 1, 1))
	acc = UnionOptional(acc, MakeXYWH(5, 5, 1, 1))
	if *acc != MakeLTRB(0, 0, 6, 6) {
		t.Errorf("UnionOptional() = %v", *acc)
	}
	if _, ok := IntersectOptional(MakeXYWH(0, 0, 1, 1), RectPtr(MakeXYWH(2, 2, 1, 1))); ok {
		t.Error("IntersectOptional(disjoint) ok = true, want false")
	}
	if got, ok := IntersectOptional(MakeXYWH(0, 0, 1, 1), nil); !ok || got != MakeXYWH(0, 0, 1, 1) {
		t.Errorf("IntersectOptional(nil) = %v, %v", got, ok)
	}
	if OptionalRect(Rect{}, false) != nil {
		t.Error("OptionalRect(_, false) != nil")
	}
}
