//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell data into a single RGBA image. The image is
// reallocated when the grid dimensions change, which happens on zoom.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(w, h)
	return gp
}

func (gp *GridPainter) resize(w, h int) {
	if gp.img != nil && gp.w == w && gp.h == h {
		return
	}
	if gp.img != nil {
		gp.img.Dispose()
	}
	gp.w, gp.h = w, h
	gp.buf = make([]byte, 4*w*h)
	gp.img = ebiten.NewImage(w, h)
}

// Blit uploads a w*h grid of cells and draws it stretched over a
// dstW*dstH pixel area at the destination origin.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, w, h int, palette Palette, dstW, dstH int) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return
	}
	gp.resize(w, h)
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dstW)/float64(w), float64(dstH)/float64(h))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
