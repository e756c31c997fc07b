package geom

import (
	"image"
	"testing"
)

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"no width", R(1, 1, 0, 4), true},
		{"no height", R(1, 1, 4, 0), true},
		{"negative", R(0, 0, -1, 3), true},
		{"area", R(0, 0, 1, 1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.IsEmpty(); got != tc.want {
				t.Errorf("%v.IsEmpty() = %v, want %v", tc.r, got, tc.want)
			}
		})
	}
}

func TestRectIntegral(t *testing.T) {
	got := R(0.5, 1.25, 10.1, 3.5).Integral()
	want := R(0, 1, 11, 4)
	if got != want {
		t.Errorf("Integral() = %v, want %v", got, want)
	}
}

func TestInsetIfNotEmpty(t *testing.T) {
	in := Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	if got := (Rect{}).InsetIfNotEmpty(in); got != (Rect{}) {
		t.Errorf("empty rect was inset to %v", got)
	}
	if got, want := R(0, 0, 10, 10).InsetIfNotEmpty(in), R(2, 1, 4, 6); got != want {
		t.Errorf("InsetIfNotEmpty = %v, want %v", got, want)
	}
}

func TestUnion(t *testing.T) {
	got := R(0, 0, 2, 2).Union(R(5, 1, 1, 4))
	if want := R(0, 0, 6, 5); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(R(1, 1, 1, 1)); got != R(1, 1, 1, 1) {
		t.Errorf("Union with empty = %v", got)
	}
}

func TestImage(t *testing.T) {
	if got, want := R(1.5, 2, 3, 4.2).Image(), image.Rect(1, 2, 5, 7); got != want {
		t.Errorf("Image() = %v, want %v", got, want)
	}
}
