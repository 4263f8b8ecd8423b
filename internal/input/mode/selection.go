package mode

// Point is a canvas coordinate.
type Point struct {
	X, Y int
}

// Rect is an inclusive rectangle of canvas coordinates.
type Rect struct {
	Min, Max Point
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width returns the number of columns in r.
func (r Rect) Width() int {
	return r.Max.X - r.Min.X + 1
}

// Height returns the number of rows in r.
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y + 1
}

// Selection is a Visual-mode selection between an anchor and a moving head.
type Selection struct {
	Anchor Point
	Head   Point
}

// Bounds returns the normalized rectangle covered by s.
func (s Selection) Bounds() Rect {
	return Rect{
		Min: Point{X: min(s.Anchor.X, s.Head.X), Y: min(s.Anchor.Y, s.Head.Y)},
		Max: Point{X: max(s.Anchor.X, s.Head.X), Y: max(s.Anchor.Y, s.Head.Y)},
	}
}

// Contains reports whether p is selected.
func (s Selection) Contains(p Point) bool {
	return s.Bounds().Contains(p)
}
