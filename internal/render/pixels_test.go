package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := Palette{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 2}, palette)
	want := []byte{
		1, 0, 0, 255,
		0, 2, 0, 255,
		0, 2, 0, 255, // values past the palette use its last entry
	}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, want %v", buf, want)
	}
}

func TestFillPaletteEmptyClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 7}
	fillPaletteRGBA(buf, []uint8{1}, nil)
	if !slices.Equal(buf, []byte{0, 0, 0, 0, 7}) {
		t.Fatalf("buf = %v", buf)
	}
}

func TestDefaultPaletteDistinguishesStates(t *testing.T) {
	if len(DefaultPalette) != 3 {
		t.Fatalf("palette has %d entries", len(DefaultPalette))
	}
	seen := map[color.RGBA]bool{}
	for _, c := range DefaultPalette {
		seen[c] = true
	}
	if len(seen) != 3 {
		t.Fatal("palette reuses a colour")
	}
}
