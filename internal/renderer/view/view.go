// Package view presents a materialized canvas frame in the terminal.
//
// Each terminal cell shows two vertically stacked image pixels using the
// upper half block: the foreground paints the upper pixel and the
// background the lower one. Since terminal cells are about twice as tall
// as they are wide, this keeps canvas pixels square on screen.
package view

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/dshills/vixel/internal/canvas"
	"github.com/dshills/vixel/internal/renderer/backend"
	"github.com/dshills/vixel/internal/renderer/core"
)

// HalfBlock is the upper half block character.
const HalfBlock = '▀'

// Overlay marks editor state on top of the frame, in canvas coordinates.
type Overlay struct {
	// Cursor is the pixel under the edit cursor.
	Cursor image.Point
	// ShowCursor enables the cursor marker.
	ShowCursor bool
	// Selection is the selected region. An empty rectangle means none.
	Selection image.Rectangle
}

// Tint strengths for overlays.
const (
	selectionTint = 0.35
	cursorTint    = 0.6
)

// CanvasView scales a frame and draws it centered in its area.
type CanvasView struct {
	scale      int // configured scale
	effective  int // scale after fitting to the area
	area       core.ScreenRect
	size       canvas.Size
	origin     core.ScreenPos // screen cell of image pixel (0, 0), may be off screen
	bounds     core.ScreenRect
	scaled     *image.NRGBA
	selectTint canvas.Color
}

// New creates a view that draws each canvas pixel scale×scale screen
// pixels large when space allows.
func New(scale int) *CanvasView {
	if scale < 1 {
		scale = 1
	}
	return &CanvasView{
		scale:      scale,
		effective:  scale,
		selectTint: canvas.RGB(0x44, 0x88, 0xff),
	}
}

// Layout positions the view for a canvas of the given size inside area.
// The scale shrinks until the frame fits, but never below one.
func (v *CanvasView) Layout(area core.ScreenRect, size canvas.Size) {
	v.area = area
	v.size = size

	v.effective = v.scale
	for v.effective > 1 && !v.fits(v.effective) {
		v.effective--
	}

	w, h := v.cellSize(v.effective)
	top := area.Top + (area.Height()-h)/2
	left := area.Left + (area.Width()-w)/2
	v.origin = core.ScreenPos{Row: top, Col: left}
	v.bounds = area.Centered(w, h)
}

func (v *CanvasView) fits(scale int) bool {
	w, h := v.cellSize(scale)
	return w <= v.area.Width() && h <= v.area.Height()
}

// cellSize returns the terminal cells covered by the scaled frame.
func (v *CanvasView) cellSize(scale int) (width, height int) {
	return v.size.Width * scale, (v.size.Height*scale + 1) / 2
}

// Scale returns the scale in effect after the last Layout.
func (v *CanvasView) Scale() int {
	return v.effective
}

// Bounds returns the visible screen region of the frame.
func (v *CanvasView) Bounds() core.ScreenRect {
	return v.bounds
}

// ScreenToCanvas maps a screen cell to canvas coordinates. A cell covers
// two image rows; the upper one is used. The result lies outside the
// canvas when the cell is outside the frame.
func (v *CanvasView) ScreenToCanvas(col, row int) (x, y int) {
	x = floorDiv(col-v.origin.Col, v.effective)
	y = floorDiv(2*(row-v.origin.Row), v.effective)
	return x, y
}

// CanvasToScreen returns the screen cell showing the top-left of canvas
// pixel (x, y).
func (v *CanvasView) CanvasToScreen(x, y int) (col, row int) {
	return v.origin.Col + x*v.effective, v.origin.Row + floorDiv(y*v.effective, 2)
}

// Draw renders frame with overlay into the view's area.
func (v *CanvasView) Draw(b backend.Backend, frame *image.NRGBA, ov Overlay) {
	b.Fill(v.area, core.EmptyCell())
	if frame == nil || v.bounds.IsEmpty() {
		return
	}

	img := v.scaleFrame(frame)
	ih := img.Bounds().Dy()
	for row := v.bounds.Top; row < v.bounds.Bottom; row++ {
		iy := 2 * (row - v.origin.Row)
		for col := v.bounds.Left; col < v.bounds.Right; col++ {
			ix := col - v.origin.Col

			style := core.NewStyle(v.pixel(img, ix, iy, ov), core.ColorDefault)
			if iy+1 < ih {
				style = style.WithBackground(v.pixel(img, ix, iy+1, ov))
			}
			b.SetCell(col, row, core.NewStyledCell(HalfBlock, style))
		}
	}
}

// scaleFrame resizes frame by the effective scale with nearest-neighbour
// sampling so pixel edges stay hard.
func (v *CanvasView) scaleFrame(frame *image.NRGBA) *image.NRGBA {
	fb := frame.Bounds()
	if v.effective == 1 {
		return frame
	}
	dst := image.Rect(0, 0, fb.Dx()*v.effective, fb.Dy()*v.effective)
	if v.scaled == nil || v.scaled.Bounds() != dst {
		v.scaled = image.NewNRGBA(dst)
	}
	xdraw.NearestNeighbor.Scale(v.scaled, dst, frame, fb, xdraw.Src, nil)
	return v.scaled
}

// pixel returns the display color of scaled image pixel (ix, iy).
func (v *CanvasView) pixel(img *image.NRGBA, ix, iy int, ov Overlay) core.Color {
	b := img.Bounds()
	c := canvas.FromColor(img.NRGBAAt(b.Min.X+ix, b.Min.Y+iy))

	p := image.Pt(ix/v.effective, iy/v.effective)
	if p.In(ov.Selection) {
		c = c.Blend(v.selectTint, selectionTint)
	}
	if ov.ShowCursor && p == ov.Cursor {
		c = c.Blend(contrast(c), cursorTint)
	}
	return core.ColorFrom(c)
}

// contrast returns black or white, whichever stands out against c.
func contrast(c canvas.Color) canvas.Color {
	l, _, _ := c.Colorful().Lab()
	if l < 0.5 {
		return canvas.White
	}
	return canvas.Black
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
