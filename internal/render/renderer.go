//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"brains3d/internal/sims/briansbrain"
)

// LayerPainter draws every z-layer of a grid side by side on one image.
type LayerPainter struct {
	layout  Layout
	palette []color.RGBA
	img     *ebiten.Image
	buf     []byte
	cells   []uint8
}

// NewLayerPainter allocates a painter for layout.
func NewLayerPainter(layout Layout) *LayerPainter {
	w, h := layout.Bounds()
	return &LayerPainter{
		layout:  layout,
		palette: DefaultPalette,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		cells:   make([]uint8, layout.Size.Len()),
	}
}

// Layout returns the painter's layout.
func (lp *LayerPainter) Layout() Layout { return lp.layout }

// Blit uploads the provided cells into the painter image and draws it.
func (lp *LayerPainter) Blit(dst *ebiten.Image, cells []briansbrain.CellState) {
	if len(cells) != len(lp.cells) {
		return
	}
	for i, s := range cells {
		lp.cells[i] = uint8(s)
	}
	fillLayersRGBA(lp.buf, lp.layout, lp.cells, lp.palette, Background)
	lp.img.WritePixels(lp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(lp.layout.Scale), float64(lp.layout.Scale))
	dst.DrawImage(lp.img, op)
}
