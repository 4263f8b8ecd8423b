// Package canvas provides the pixel canvas for vixel.
//
// A Canvas is a fixed-size, CPU-resident grid of colors and is the single
// source of truth for image content. Pixels are stored row-major: the pixel
// at (x, y) lives at index y*width + x.
//
// # Addressing
//
// Every read and write is bounds checked. A coordinate outside
// [0,width) × [0,height) yields an error matching ErrOutOfBounds and
// leaves the canvas unchanged:
//
//	if err := c.SetPixel(x, y, canvas.Green); errors.Is(err, canvas.ErrOutOfBounds) {
//	    // report, clamp or ignore
//	}
//
// # Materialization
//
// The renderer never reads the pixel buffer directly. It asks for a
// displayable image with Materialize, once per frame. Materialize only
// rebuilds the image when pixels changed since the previous call, and a
// rebuild always produces a new image so frames already handed out stay
// intact.
//
// A Canvas is not safe for concurrent use. The frame loop owns it.
package canvas
