package canvas

import "image"

// Canvas is a fixed-size grid of pixels.
type Canvas struct {
	size       Size
	background Color
	pixels     []Color

	// frame is the last materialized image; nil until the first call.
	frame   *image.NRGBA
	dirty   bool
	version uint64
}

// New creates a canvas with every pixel set to Black.
func New(width, height int) (*Canvas, error) {
	return NewFilled(width, height, Black)
}

// NewFilled creates a canvas with every pixel set to fill.
// fill is also the background used by Resized.
func NewFilled(width, height int, fill Color) (*Canvas, error) {
	size, err := NewSize(width, height)
	if err != nil {
		return nil, err
	}

	pixels := make([]Color, size.Area())
	for i := range pixels {
		pixels[i] = fill
	}

	return &Canvas{
		size:       size,
		background: fill,
		pixels:     pixels,
		dirty:      true, // first Materialize builds the frame
	}, nil
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() Size {
	return c.size
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.size.Width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.size.Height
}

// Background returns the fill color the canvas was created with.
func (c *Canvas) Background() Color {
	return c.background
}

// Version increments on every successful SetPixel.
func (c *Canvas) Version() uint64 {
	return c.version
}

// SetPixel writes col at (x, y).
// It does not touch the materialized frame.
func (c *Canvas) SetPixel(x, y int, col Color) error {
	if !c.size.Contains(x, y) {
		return &BoundsError{Op: "set", X: x, Y: y, Size: c.size}
	}
	c.pixels[c.size.Index(x, y)] = col
	c.dirty = true
	c.version++
	return nil
}

// Pixel returns the color at (x, y).
func (c *Canvas) Pixel(x, y int) (Color, error) {
	if !c.size.Contains(x, y) {
		return Color{}, &BoundsError{Op: "get", X: x, Y: y, Size: c.size}
	}
	return c.pixels[c.size.Index(x, y)], nil
}

// Materialize returns a displayable image of the current pixels.
//
// The image is rebuilt only when pixels changed since the previous call.
// A rebuild allocates a new image, so callers may keep a returned frame
// but must not modify it.
func (c *Canvas) Materialize() *image.NRGBA {
	if c.frame != nil && !c.dirty {
		return c.frame
	}

	img := image.NewNRGBA(image.Rect(0, 0, c.size.Width, c.size.Height))
	for i, p := range c.pixels {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}

	c.frame = img
	c.dirty = false
	return img
}

// Resized returns a new canvas of the given size. Pixels inside both
// extents are copied; the rest take the background color. c is unchanged.
func (c *Canvas) Resized(width, height int) (*Canvas, error) {
	next, err := NewFilled(width, height, c.background)
	if err != nil {
		return nil, err
	}

	w := min(c.size.Width, width)
	h := min(c.size.Height, height)
	for y := 0; y < h; y++ {
		src := c.size.Index(0, y)
		dst := next.size.Index(0, y)
		copy(next.pixels[dst:dst+w], c.pixels[src:src+w])
	}
	return next, nil
}
