package canvas

import "fmt"

// Size is the immutable extent of a canvas.
type Size struct {
	Width  int
	Height int
}

// NewSize validates and returns a Size.
func NewSize(width, height int) (Size, error) {
	if width <= 0 || height <= 0 {
		return Size{}, dimensionsError(width, height)
	}
	return Size{Width: width, Height: height}, nil
}

// Contains reports whether (x, y) addresses a pixel.
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// Index returns the row-major buffer index of (x, y).
// The coordinate must be contained in s.
func (s Size) Index(x, y int) int {
	return y*s.Width + x
}

// Area returns the number of pixels.
func (s Size) Area() int {
	return s.Width * s.Height
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
