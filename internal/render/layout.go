package render

import (
	"math"

	"brains3d/internal/core"
)

// Layout tiles the z-layers of a 3D grid onto a 2D sheet. Layer z sits in
// column z%Columns and row z/Columns, separated from its neighbours by Gap
// empty cells. Sheet coordinates are in cells; Scale converts them to
// screen pixels.
type Layout struct {
	Size    core.Size
	Columns int
	Gap     int
	Scale   int
}

// NewLayout arranges the layers in a roughly square block.
func NewLayout(size core.Size, scale int) Layout {
	if scale <= 0 {
		scale = 1
	}
	cols := int(math.Ceil(math.Sqrt(float64(size.D))))
	if cols < 1 {
		cols = 1
	}
	return Layout{Size: size, Columns: cols, Gap: 1, Scale: scale}
}

// Rows returns the number of layer rows on the sheet.
func (l Layout) Rows() int {
	return (l.Size.D + l.Columns - 1) / l.Columns
}

// Bounds returns the sheet dimensions in cells.
func (l Layout) Bounds() (int, int) {
	w := l.Columns*(l.Size.W+l.Gap) - l.Gap
	h := l.Rows()*(l.Size.H+l.Gap) - l.Gap
	return w, h
}

// ScreenSize returns the sheet dimensions in pixels.
func (l Layout) ScreenSize() (int, int) {
	w, h := l.Bounds()
	return w * l.Scale, h * l.Scale
}

// Origin returns the sheet position of the top-left cell of layer z.
func (l Layout) Origin(z int) (int, int) {
	col := z % l.Columns
	row := z / l.Columns
	return col * (l.Size.W + l.Gap), row * (l.Size.H + l.Gap)
}

// Pick maps a screen pixel to the cell drawn there. Pixels on gaps or
// outside the sheet report false.
func (l Layout) Pick(px, py int) (core.Coord, bool) {
	if px < 0 || py < 0 || l.Scale <= 0 {
		return core.Coord{}, false
	}
	sx, sy := px/l.Scale, py/l.Scale
	pitchX, pitchY := l.Size.W+l.Gap, l.Size.H+l.Gap
	col, x := sx/pitchX, sx%pitchX
	row, y := sy/pitchY, sy%pitchY
	if x >= l.Size.W || y >= l.Size.H || col >= l.Columns {
		return core.Coord{}, false
	}
	z := row*l.Columns + col
	if z >= l.Size.D {
		return core.Coord{}, false
	}
	return core.Coord{X: x, Y: y, Z: z}, true
}
