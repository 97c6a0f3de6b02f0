package render

import (
	"testing"

	"brains3d/internal/core"
)

func TestNewLayoutBounds(t *testing.T) {
	l := NewLayout(core.Size{W: 4, H: 3, D: 5}, 2)
	if l.Columns != 3 || l.Rows() != 2 {
		t.Fatalf("columns=%d rows=%d, want 3 and 2", l.Columns, l.Rows())
	}
	w, h := l.Bounds()
	if w != 3*5-1 || h != 2*4-1 {
		t.Fatalf("bounds = %dx%d", w, h)
	}
	sw, sh := l.ScreenSize()
	if sw != 2*w || sh != 2*h {
		t.Fatalf("screen size = %dx%d", sw, sh)
	}
}

func TestPickRoundTrip(t *testing.T) {
	l := NewLayout(core.Size{W: 4, H: 3, D: 5}, 3)
	for z := 0; z < l.Size.D; z++ {
		ox, oy := l.Origin(z)
		for y := 0; y < l.Size.H; y++ {
			for x := 0; x < l.Size.W; x++ {
				// Sample the last pixel of the cell to catch off-by-one errors.
				px := (ox+x)*l.Scale + l.Scale - 1
				py := (oy+y)*l.Scale + l.Scale - 1
				got, ok := l.Pick(px, py)
				if !ok || got != (core.Coord{X: x, Y: y, Z: z}) {
					t.Fatalf("Pick(%d,%d) = %+v,%v want (%d,%d,%d)", px, py, got, ok, x, y, z)
				}
			}
		}
	}
}

func TestPickMisses(t *testing.T) {
	l := NewLayout(core.Size{W: 4, H: 3, D: 5}, 1)
	misses := [][2]int{
		{-1, 0},
		{0, -1},
		{4, 0},   // gap after layer 0
		{0, 3},   // gap below the first row
		{10, 4},  // layer 5 slot is empty
		{100, 0}, // beyond the sheet
	}
	for _, m := range misses {
		if c, ok := l.Pick(m[0], m[1]); ok {
			t.Fatalf("Pick(%d,%d) = %+v, expected miss", m[0], m[1], c)
		}
	}
}
