package osd2csv

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

/* Test helpers for building synthetic frames and recordings. */

func setCell(fr *Frame, x int, y int, g Glyph) {
	fr.grid[x*MAX_Y+y] = g
}

func placeGlyphs(fr *Frame, x int, y int, glyphs ...Glyph) {
	for i, g := range glyphs {
		setCell(fr, x+i, y, g)
	}
}

func placeString(fr *Frame, x int, y int, s string) {
	for i, ch := range s {
		setCell(fr, x+i, y, Glyph(ch))
	}
}

// buildOSD serializes frames into an in-memory .osd recording.
func buildOSD(t *testing.T, variant FontVariant, frames ...*Frame) []byte {
	t.Helper()

	var h = Header{
		Version:     OSD_VERSION,
		CharWidth:   MAX_X,
		CharHeight:  MAX_Y,
		FontWidth:   24,
		FontHeight:  36,
		FontVariant: uint8(variant),
	}
	copy(h.Magic[:], OSD_MAGIC)

	var buf bytes.Buffer

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &h))

	for _, fr := range frames {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, fr.FrameIdx))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, fr.Size))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, fr.grid))
	}

	return buf.Bytes()
}
