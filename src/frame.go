package osd2csv

import (
	"fmt"
	"strings"
)

// Glyph is the code identifying which symbol is rendered in one grid
// cell.  Codes 0x20..0x5e are plain ASCII; everything else is an icon
// or special character from the goggle font.
type Glyph uint16

// Frame is one snapshot of the character grid.  Immutable once read.
type Frame struct {
	FrameIdx uint32 /* Video frame number this snapshot belongs to. */
	Size     uint32
	grid     [MAX_T]Glyph
}

// Cell returns the glyph at display position (x, y).
// Storage is column-major: index = x*MAX_Y + y.
func (fr *Frame) Cell(x int, y int) (Glyph, error) {
	if x < 0 || x >= MAX_X || y < 0 || y >= MAX_Y {
		return 0, fmt.Errorf("cell (%d, %d) out of range", x, y)
	}

	return fr.grid[x*MAX_Y+y], nil
}

// Line returns display row y as a fresh slice, left to right.
func (fr *Frame) Line(y int) ([]Glyph, error) {
	if y < 0 || y >= MAX_Y {
		return nil, fmt.Errorf("line %d out of range", y)
	}

	var line = make([]Glyph, MAX_X)
	for x := 0; x < MAX_X; x++ {
		line[x] = fr.grid[x*MAX_Y+y]
	}

	return line, nil
}

// GlyphToChar maps a glyph code to something printable: '~' for empty
// cells, the character itself for the ASCII range, 'u' for anything
// else.
func GlyphToChar(g Glyph) rune {
	switch {
	case g == 0:
		return '~'
	case g >= 0x20 && g < 0x5f:
		return rune(g)
	default:
		return 'u'
	}
}

// String renders the whole grid as printable text, one display row
// per line.
func (fr *Frame) String() string {
	var sb strings.Builder

	for y := 0; y < MAX_Y; y++ {
		for x := 0; x < MAX_X; x++ {
			sb.WriteRune(GlyphToChar(fr.grid[x*MAX_Y+y]))
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

// HexDump renders the grid with non-ASCII glyph codes shown as hex,
// for picking marker codes out of unfamiliar fonts.
func (fr *Frame) HexDump() string {
	var sb strings.Builder

	for y := 0; y < MAX_Y; y++ {
		for x := 0; x < MAX_X; x++ {
			var g = fr.grid[x*MAX_Y+y]

			switch {
			case g == 0:
				sb.WriteString("  |")
			case g >= 0x20 && g < 0x5f:
				sb.WriteRune(rune(g))
				sb.WriteString(" |")
			default:
				fmt.Fprintf(&sb, "%02X|", uint16(g))
			}
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}
