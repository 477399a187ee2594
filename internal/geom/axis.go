package geom

import (
	"fmt"
	"strings"
)

// Axis is the orientation of a split.
type Axis uint8

const (
	// Horizontal places children side by side and divides the width.
	Horizontal Axis = iota
	// Vertical stacks children and divides the height.
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Flip returns the other axis.
func (a Axis) Flip() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseAxis accepts "horizontal"/"h" and "vertical"/"v".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q", s)
}

// LongerAxis picks the axis that divides the longer side of r. Square
// rectangles split horizontally.
func LongerAxis(r Rect) Axis {
	if r.H > r.W {
		return Vertical
	}
	return Horizontal
}

// Direction is a cardinal direction used for focus, move and resize.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

var directionNames = [...]string{"left", "right", "up", "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", d)
}

// Axis returns the split axis that direction travels along.
func (d Direction) Axis() Axis {
	if d == Up || d == Down {
		return Vertical
	}
	return Horizontal
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Forward reports whether d points toward the second child of a split.
func (d Direction) Forward() bool {
	return d == Right || d == Down
}

// ParseDirection accepts left/right/up/down and the vim keys h/l/k/j.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "h":
		return Left, nil
	case "right", "l":
		return Right, nil
	case "up", "k":
		return Up, nil
	case "down", "j":
		return Down, nil
	}
	return Left, fmt.Errorf("unknown direction %q", s)
}
