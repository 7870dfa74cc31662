package store

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"growth-medium/internal/core"
)

// Encode writes pattern as one line of '0'/'1' characters per row.
func Encode(w io.Writer, pattern [][]uint8) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 64)
	for r, row := range pattern {
		line = line[:0]
		for c, v := range row {
			switch v {
			case 0:
				line = append(line, '0')
			case 1:
				line = append(line, '1')
			default:
				return fmt.Errorf("store: value %d at row %d col %d: %w", v, r, c, core.ErrInvalidInput)
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses the format written by Encode. Blank lines are skipped and
// trailing whitespace is ignored.
func Decode(r io.Reader) ([][]uint8, error) {
	var out [][]uint8
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if text == "" {
			continue
		}
		row := make([]uint8, len(text))
		for i := 0; i < len(text); i++ {
			switch text[i] {
			case '0':
			case '1':
				row[i] = 1
			default:
				return nil, fmt.Errorf("store: line %d: unexpected %q: %w", n, text[i], core.ErrFormat)
			}
		}
		if len(out) > 0 && len(row) != len(out[0]) {
			return nil, fmt.Errorf("store: line %d: width %d, want %d: %w", n, len(row), len(out[0]), core.ErrFormat)
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("store: read: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("store: no rows: %w", core.ErrFormat)
	}
	return out, nil
}

// Crop returns the tightest rectangle holding every non-zero cell of a
// row-major w*h grid, with states collapsed to 0/1.
func Crop(cells []uint8, w, h int) ([][]uint8, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("store: %d cells do not form a %dx%d grid: %w", len(cells), w, h, core.ErrInvalidInput)
	}
	minR, minC, maxR, maxC := h, w, -1, -1
	for i, v := range cells {
		if v == 0 {
			continue
		}
		r, c := i/w, i%w
		minR, maxR = min(minR, r), max(maxR, r)
		minC, maxC = min(minC, c), max(maxC, c)
	}
	if maxR < 0 {
		return nil, fmt.Errorf("store: no live cells: %w", core.ErrEmptyState)
	}
	out := make([][]uint8, maxR-minR+1)
	for r := range out {
		out[r] = make([]uint8, maxC-minC+1)
		for c := range out[r] {
			if cells[(minR+r)*w+minC+c] != 0 {
				out[r][c] = 1
			}
		}
	}
	return out, nil
}
