// Package geom provides the integer rectangle math shared by the layout
// engine and the window manager.
package geom

import "fmt"

// Ratio bounds applied to every split.
const (
	MinRatio     = 0.05
	MaxRatio     = 0.95
	DefaultRatio = 0.5
)

// Point is a position in output coordinates.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Size is a width/height pair.
type Size struct {
	W int `json:"w" yaml:"w" toml:"w"`
	H int `json:"h" yaml:"h" toml:"h"`
}

// Rect is an axis-aligned rectangle. W and H are never negative.
type Rect struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
	W int `json:"w" yaml:"w" toml:"w"`
	H int `json:"h" yaml:"h" toml:"h"`
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Center returns the midpoint, rounded toward the origin.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks the rectangle by n on every side. The result keeps at least
// one unit of width and height.
func (r Rect) Inset(n int) Rect {
	if n <= 0 {
		return r
	}
	dx, dy := n, n
	if 2*dx >= r.W {
		dx = max(0, (r.W-1)/2)
	}
	if 2*dy >= r.H {
		dy = max(0, (r.H-1)/2)
	}
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// ClampInto shifts and shrinks r so that it lies inside outer.
func (r Rect) ClampInto(outer Rect) Rect {
	r.W = min(r.W, outer.W)
	r.H = min(r.H, outer.H)
	if r.X < outer.X {
		r.X = outer.X
	}
	if r.Y < outer.Y {
		r.Y = outer.Y
	}
	if r.X+r.W > outer.X+outer.W {
		r.X = outer.X + outer.W - r.W
	}
	if r.Y+r.H > outer.Y+outer.H {
		r.Y = outer.Y + outer.H - r.H
	}
	return r
}

// Intersect returns the overlap of r and o, or the zero Rect when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Centered returns a rectangle of the given size centered in outer and
// clamped to it.
func Centered(outer Rect, size Size) Rect {
	w, h := min(size.W, outer.W), min(size.H, outer.H)
	return Rect{
		X: outer.X + (outer.W-w)/2,
		Y: outer.Y + (outer.H-h)/2,
		W: w,
		H: h,
	}
}

// Split divides r along axis. The first part receives
// int(extent*ratio) units and the second part the remainder, so the two
// always tile r exactly.
func (r Rect) Split(axis Axis, ratio float64) (first, second Rect) {
	first, second = r, r
	switch axis {
	case Horizontal:
		first.W = int(float64(r.W) * ratio)
		second.X = r.X + first.W
		second.W = r.W - first.W
	case Vertical:
		first.H = int(float64(r.H) * ratio)
		second.Y = r.Y + first.H
		second.H = r.H - first.H
	}
	return first, second
}

// ClampRatio limits a split ratio to [MinRatio, MaxRatio].
func ClampRatio(ratio float64) float64 {
	if ratio != ratio { // NaN
		return DefaultRatio
	}
	return min(max(ratio, MinRatio), MaxRatio)
}
