package store

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"growth-medium/internal/core"
)

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	pattern := [][]uint8{{0, 1, 0}, {0, 0, 1}, {1, 1, 1}}
	if err := Encode(&buf, pattern); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := buf.String(), "010\n001\n111\n"; got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeRejectsStates(t *testing.T) {
	err := Encode(&bytes.Buffer{}, [][]uint8{{1, 2}})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDecodeTolerance(t *testing.T) {
	got, err := Decode(strings.NewReader("\n011\r\n\n110  \n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := [][]uint8{{0, 1, 1}, {1, 1, 0}}
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for r := range want {
		if !bytes.Equal(got[r], want[r]) {
			t.Fatalf("row %d = %v, want %v", r, got[r], want[r])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"blank":     "\n\n  \n",
		"ragged":    "010\n01\n",
		"character": "012\n",
		"inner gap": "0 1\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(input)); !errors.Is(err, core.ErrFormat) {
				t.Fatalf("err = %v, want ErrFormat", err)
			}
		})
	}
}

func TestCrop(t *testing.T) {
	cells := []uint8{
		0, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 1, 0,
	}
	got, err := Crop(cells, 4, 3)
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	want := [][]uint8{{1, 0}, {0, 1}}
	if len(got) != len(want) || !bytes.Equal(got[0], want[0]) || !bytes.Equal(got[1], want[1]) {
		t.Fatalf("Crop = %v, want %v", got, want)
	}
	if _, err := Crop(make([]uint8, 6), 3, 2); !errors.Is(err, core.ErrEmptyState) {
		t.Fatalf("empty err = %v", err)
	}
	if _, err := Crop(cells, 5, 3); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("mismatched err = %v", err)
	}
}
