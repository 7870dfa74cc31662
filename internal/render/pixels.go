package render

import "image/color"

// Palette maps cell states to colours; index 0 is dead, 1 alive, 2 ancient.
type Palette []color.RGBA

// DefaultPalette is used while a configuration evolves.
var DefaultPalette = Palette{
	{R: 12, G: 14, B: 18, A: 255},
	{R: 110, G: 220, B: 120, A: 255},
	{R: 230, G: 170, B: 60, A: 255},
}

// EditPalette tints the display while an edit is pending.
var EditPalette = Palette{
	{R: 24, G: 20, B: 36, A: 255},
	{R: 170, G: 150, B: 255, A: 255},
	{R: 170, G: 150, B: 255, A: 255},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette Palette) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
