package geom

import (
	"math"
	"testing"
)

func TestSplitTilesParent(t *testing.T) {
	tests := []struct {
		name  string
		r     Rect
		axis  Axis
		ratio float64
		first Rect
		secnd Rect
	}{
		{"even horizontal", R(0, 0, 1920, 1080), Horizontal, 0.5, R(0, 0, 960, 1080), R(960, 0, 960, 1080)},
		{"even vertical", R(0, 0, 960, 1080), Vertical, 0.5, R(0, 0, 960, 540), R(0, 540, 960, 540)},
		{"odd width truncates", R(10, 0, 101, 50), Horizontal, 0.5, R(10, 0, 50, 50), R(60, 0, 51, 50)},
		{"skewed ratio", R(0, 0, 1000, 10), Horizontal, 0.3, R(0, 0, 300, 10), R(300, 0, 700, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.r.Split(tt.axis, tt.ratio)
			if a != tt.first || b != tt.secnd {
				t.Errorf("Split() = %v, %v; want %v, %v", a, b, tt.first, tt.secnd)
			}
			if a.W*a.H+b.W*b.H != tt.r.W*tt.r.H {
				t.Errorf("halves do not cover parent area")
			}
		})
	}
}

func TestLongerAxis(t *testing.T) {
	tests := []struct {
		r    Rect
		want Axis
	}{
		{R(0, 0, 1920, 1080), Horizontal},
		{R(0, 0, 960, 1080), Vertical},
		{R(0, 0, 500, 500), Horizontal},
	}
	for _, tt := range tests {
		if got := LongerAxis(tt.r); got != tt.want {
			t.Errorf("LongerAxis(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestClampRatio(t *testing.T) {
	tests := map[float64]float64{
		0.5:        0.5,
		0.01:       MinRatio,
		-3:         MinRatio,
		0.99:       MaxRatio,
		math.NaN(): DefaultRatio,
	}
	for in, want := range tests {
		if got := ClampRatio(in); got != want {
			t.Errorf("ClampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestCenteredAndClamp(t *testing.T) {
	out := R(1920, 0, 1920, 1080)

	if got := Centered(out, Size{W: 800, H: 600}); got != R(2480, 240, 800, 600) {
		t.Errorf("Centered() = %v", got)
	}
	if got := Centered(out, Size{W: 4000, H: 600}); got.W != 1920 || got.X != 1920 {
		t.Errorf("Centered() oversize = %v", got)
	}
	if got := R(3700, 1000, 400, 300).ClampInto(out); got != R(3440, 780, 400, 300) {
		t.Errorf("ClampInto() = %v", got)
	}
}

func TestInset(t *testing.T) {
	if got := R(0, 0, 100, 50).Inset(2); got != R(2, 2, 96, 46) {
		t.Errorf("Inset(2) = %v", got)
	}
	if got := R(0, 0, 3, 3).Inset(5); got.Empty() {
		t.Errorf("Inset() produced empty rect %v", got)
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		a, b, want Rect
	}{
		{R(0, 0, 100, 100), R(50, 50, 100, 100), R(50, 50, 50, 50)},
		{R(0, 0, 100, 100), R(10, 10, 20, 20), R(10, 10, 20, 20)},
		{R(0, 0, 100, 100), R(100, 0, 10, 10), Rect{}},
		{R(-20, -20, 40, 40), R(0, 0, 80, 24), R(0, 0, 20, 20)},
	}
	for _, tt := range tests {
		if got := tt.a.Intersect(tt.b); got != tt.want {
			t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDirection(t *testing.T) {
	for _, d := range []Direction{Left, Right, Up, Down} {
		parsed, err := ParseDirection(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), parsed, err)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite() is not an involution", d)
		}
	}
	if Up.Axis() != Vertical || Left.Axis() != Horizontal {
		t.Error("Direction.Axis() mismatch")
	}
}
