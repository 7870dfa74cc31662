package medium

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTCounter counts neighbours as a 2D convolution of the alive mask with
// the Moore kernel, evaluated in the frequency domain. The grid is
// zero-padded by two rows and two columns so the circular convolution of
// the FFT never folds the far edge onto the near one.
type FFTCounter struct {
	w, h   int
	pw, ph int
	halfW  int

	rowFFT *fourier.FFT
	colFFT *fourier.CmplxFFT

	kernel []complex128 // ph rows of halfW coefficients
	freq   []complex128
	col    []complex128
	row    []float64
	norm   float64
}

// NewFFTCounter returns an FFT-backed counter for a w*h grid.
func NewFFTCounter(w, h int) *FFTCounter {
	pw, ph := w+2, h+2
	c := &FFTCounter{
		w: w, h: h,
		pw: pw, ph: ph,
		halfW:  pw/2 + 1,
		rowFFT: fourier.NewFFT(pw),
		colFFT: fourier.NewCmplxFFT(ph),
		col:    make([]complex128, ph),
		row:    make([]float64, pw),
		norm:   1 / float64(pw*ph),
	}
	c.freq = make([]complex128, ph*c.halfW)
	c.kernel = make([]complex128, ph*c.halfW)

	spatial := make([]float64, pw*ph)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			spatial[((dy+ph)%ph)*pw+(dx+pw)%pw] = 1
		}
	}
	for y := 0; y < ph; y++ {
		c.rowFFT.Coefficients(c.kernel[y*c.halfW:(y+1)*c.halfW], spatial[y*pw:(y+1)*pw])
	}
	c.transformColumns(c.kernel, false)
	return c
}

// CountNeighbors implements NeighborCounter.
func (c *FFTCounter) CountNeighbors(alive, counts []uint8) {
	for y := 0; y < c.ph; y++ {
		for x := range c.row {
			c.row[x] = 0
		}
		if y < c.h {
			for x := 0; x < c.w; x++ {
				c.row[x] = float64(alive[y*c.w+x])
			}
		}
		c.rowFFT.Coefficients(c.freq[y*c.halfW:(y+1)*c.halfW], c.row)
	}
	c.transformColumns(c.freq, false)

	for i := range c.freq {
		c.freq[i] *= c.kernel[i]
	}

	c.transformColumns(c.freq, true)
	for y := 0; y < c.h; y++ {
		c.rowFFT.Sequence(c.row, c.freq[y*c.halfW:(y+1)*c.halfW])
		for x := 0; x < c.w; x++ {
			counts[y*c.w+x] = uint8(math.Round(c.row[x] * c.norm))
		}
	}
}

func (c *FFTCounter) transformColumns(buf []complex128, inverse bool) {
	for x := 0; x < c.halfW; x++ {
		for y := 0; y < c.ph; y++ {
			c.col[y] = buf[y*c.halfW+x]
		}
		if inverse {
			c.colFFT.Sequence(c.col, c.col)
		} else {
			c.colFFT.Coefficients(c.col, c.col)
		}
		for y := 0; y < c.ph; y++ {
			buf[y*c.halfW+x] = c.col[y]
		}
	}
}
