// Package geom provides simple geometric value types.
package geom

// Rect is a rectangle value with a width and a height.
type Rect struct {
	Width  float64
	Height float64
}

// NewRect creates a rectangle with the given dimensions.
func NewRect(width, height float64) Rect {
	return Rect{Width: width, Height: height}
}

// Area returns the rectangle area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}
