package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Glyphs used by the text renderer, indexed by cell state.
var Glyphs = [3]byte{'.', 'o', '#'}

// Text renders grids for terminals. Colours are dropped automatically when
// the writer is not a colour terminal.
type Text struct {
	states [3]lipgloss.Style
	header lipgloss.Style
	frame  lipgloss.Style
}

// NewText returns a renderer whose colour profile matches w.
func NewText(w io.Writer) *Text {
	r := lipgloss.NewRenderer(w)
	return &Text{
		states: [3]lipgloss.Style{
			r.NewStyle().Foreground(lipgloss.Color("238")),
			r.NewStyle().Foreground(lipgloss.Color("42")),
			r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		},
		header: r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		frame:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	}
}

// Grid renders a row-major grid with cols columns, one line per row.
func (t *Text) Grid(cells []uint8, cols int) string {
	if cols <= 0 || len(cells) == 0 {
		return ""
	}
	var b strings.Builder
	run := make([]byte, 0, cols)
	for start := 0; start < len(cells); start += cols {
		if start > 0 {
			b.WriteByte('\n')
		}
		row := cells[start:min(start+cols, len(cells))]
		for i := 0; i < len(row); {
			s := state(row[i])
			run = run[:0]
			for i < len(row) && state(row[i]) == s {
				run = append(run, Glyphs[s])
				i++
			}
			b.WriteString(t.states[s].Render(string(run)))
		}
	}
	return b.String()
}

// Pattern renders a stored configuration.
func (t *Text) Pattern(pattern [][]uint8) string {
	if len(pattern) == 0 {
		return ""
	}
	cols := len(pattern[0])
	cells := make([]uint8, 0, len(pattern)*cols)
	for _, row := range pattern {
		cells = append(cells, row...)
	}
	return t.Grid(cells, cols)
}

// Frame renders a titled, bordered grid.
func (t *Text) Frame(title string, cells []uint8, cols int) string {
	return lipgloss.JoinVertical(lipgloss.Left, t.header.Render(title), t.frame.Render(t.Grid(cells, cols)))
}

func state(v uint8) int {
	if v > 2 {
		return 2
	}
	return int(v)
}
