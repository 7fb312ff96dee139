// Package core provides fundamental types and utilities for the jumper platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is the world-space counterpart of Rect. World y grows downward, so
// "higher" objects have smaller Y.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// OverlapsX reports whether the horizontal spans of two boxes overlap.
func (b Box) OverlapsX(other Box) bool {
	return b.X < other.Right() && other.X < b.Right()
}

// Shift returns the box moved by (dx, dy).
func (b Box) Shift(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Wrap maps x into [0, width). Wrap(Wrap(x)) == Wrap(x).
func Wrap(x, width float64) float64 {
	if width <= 0 {
		return x
	}
	x = math.Mod(x, width)
	if x < 0 {
		x += width
	}
	// math.Mod(-tiny, w)+w can round to exactly w
	if x >= width {
		x = 0
	}
	return x
}

// WrapInt maps x into [0, width).
func WrapInt(x, width int) int {
	if width <= 0 {
		return x
	}
	x %= width
	if x < 0 {
		x += width
	}
	return x
}
