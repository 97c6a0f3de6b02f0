package render

import "image/color"

// DefaultPalette colours cells by state: ready, firing, refractory.
var DefaultPalette = []color.RGBA{
	{R: 28, G: 30, B: 38, A: 255},
	{R: 250, G: 250, B: 255, A: 255},
	{R: 64, G: 120, B: 220, A: 255},
}

// Background is used for the gaps between layers.
var Background = color.RGBA{A: 255}

// fillLayersRGBA converts cell values into RGBA pixels on the layer sheet.
// buf must hold 4 bytes per sheet cell. Values beyond the palette use its
// last entry; an empty palette paints every cell with the background.
func fillLayersRGBA(buf []byte, l Layout, cells []uint8, palette []color.RGBA, bg color.RGBA) {
	sheetW, _ := l.Bounds()
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = bg.R
		buf[i+1] = bg.G
		buf[i+2] = bg.B
		buf[i+3] = bg.A
	}
	if len(palette) == 0 {
		return
	}
	last := len(palette) - 1
	size := l.Size
	for z := 0; z < size.D; z++ {
		ox, oy := l.Origin(z)
		for y := 0; y < size.H; y++ {
			for x := 0; x < size.W; x++ {
				idx := size.Index(x, y, z)
				if idx >= len(cells) {
					return
				}
				c := int(cells[idx])
				if c > last {
					c = last
				}
				col := palette[c]
				base := ((oy+y)*sheetW + ox + x) * 4
				buf[base+0] = col.R
				buf[base+1] = col.G
				buf[base+2] = col.B
				buf[base+3] = col.A
			}
		}
	}
}
