package canvas

import (
	"errors"
	"testing"
)

func TestSizeIndex(t *testing.T) {
	s := Size{Width: 4, Height: 3}

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{0, 1, 4},
		{1, 2, 9},
		{3, 2, 11},
	}
	for _, tt := range tests {
		if got := s.Index(tt.x, tt.y); got != tt.want {
			t.Errorf("Index(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSizeContains(t *testing.T) {
	s := Size{Width: 2, Height: 5}

	if !s.Contains(1, 4) {
		t.Error("Contains(1,4) should be true")
	}
	for _, xy := range [][2]int{{2, 0}, {0, 5}, {-1, 0}, {0, -1}} {
		if s.Contains(xy[0], xy[1]) {
			t.Errorf("Contains(%d,%d) should be false", xy[0], xy[1])
		}
	}
}

func TestNewSize(t *testing.T) {
	if _, err := NewSize(0, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewSize(0,1) error = %v", err)
	}
	s, err := NewSize(8, 2)
	if err != nil {
		t.Fatalf("NewSize() error = %v", err)
	}
	if s.Area() != 16 || s.String() != "8x2" {
		t.Errorf("Size = %v area %d", s, s.Area())
	}
}
