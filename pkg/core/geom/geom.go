// Package geom provides the small set of 2D value types shared by the text
// measurer and the layout engine.
//
// All coordinates use a top-left origin with y growing downward, in points.
// Every type is a plain value; methods never modify their receiver.
package geom

import "math"

// Point is a position in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// AspectFitted scales s uniformly so that it fits inside box, growing or
// shrinking as needed. Degenerate sizes return the zero Size.
func (s Size) AspectFitted(box Size) Size {
	if s.IsEmpty() {
		return Size{}
	}
	return s.scaledTo(box, box.Width/s.Width <= box.Height/s.Height)
}

// scaledTo scales s so that it matches box exactly along one axis, chosen
// by byWidth, and floors both dimensions.
func (s Size) scaledTo(box Size, byWidth bool) Size {
	if byWidth {
		return Size{Width: math.Floor(box.Width), Height: math.Floor(s.Height * box.Width / s.Width)}
	}
	return Size{Width: math.Floor(s.Width * box.Height / s.Height), Height: math.Floor(box.Height)}
}

// Fitted scales s down uniformly so that it fits inside box. Sizes that
// already fit are returned unchanged.
func (s Size) Fitted(box Size) Size {
	if s.IsEmpty() {
		return Size{}
	}
	if s.Width <= box.Width && s.Height <= box.Height {
		return s
	}
	return s.AspectFitted(box)
}

// AspectFilled scales s uniformly so that it covers box entirely. One of the
// resulting dimensions matches box, the other is greater or equal.
func (s Size) AspectFilled(box Size) Size {
	if s.IsEmpty() {
		return Size{}
	}
	return s.scaledTo(box, box.Width/s.Width >= box.Height/s.Height)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectOf builds a rectangle from an origin and a size.
func RectOf(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Intersects reports whether r and o overlap. Zero-height rectangles (anchor
// markers) intersect any rectangle whose vertical span includes their y.
func (r Rect) Intersects(o Rect) bool {
	if r.X > o.MaxX() || o.X > r.MaxX() {
		return false
	}
	if r.Height == 0 || o.Height == 0 {
		return r.Y <= o.MaxY() && o.Y <= r.MaxY()
	}
	return r.Y < o.MaxY() && o.Y < r.MaxY()
}
