package osd2csv

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReaderHeader(t *testing.T) {
	var data = buildOSD(t, FONT_BETAFLIGHT)

	var rd, err = NewReader(bytes.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, uint16(OSD_VERSION), rd.Header.Version)
	assert.Equal(t, uint8(MAX_X), rd.Header.CharWidth)
	assert.Equal(t, uint8(MAX_Y), rd.Header.CharHeight)
	assert.Equal(t, FONT_BETAFLIGHT, rd.Variant())
}

func TestNewReaderBadMagic(t *testing.T) {
	var data = buildOSD(t, FONT_BETAFLIGHT)
	copy(data[0:7], "NOTOSD\x00")

	var _, err = NewReader(bytes.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect magic")
}

func TestNewReaderBadVersion(t *testing.T) {
	var data = buildOSD(t, FONT_BETAFLIGHT)
	data[7] = 2 // Version low byte.

	var _, err = NewReader(bytes.NewReader(data))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestNewReaderTruncatedHeader(t *testing.T) {
	var data = buildOSD(t, FONT_BETAFLIGHT)

	var _, err = NewReader(bytes.NewReader(data[:10]))

	require.Error(t, err)
}

func TestReaderNext(t *testing.T) {
	var f0 = &Frame{FrameIdx: 0}
	var f1 = &Frame{FrameIdx: 17}

	var data = buildOSD(t, FONT_BETAFLIGHT, f0, f1)

	var rd, err = NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	var fr *Frame

	fr, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), fr.FrameIdx)

	fr, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(17), fr.FrameIdx)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)

	rd.Rewind()

	fr, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), fr.FrameIdx)
}

func TestReaderRandomAccess(t *testing.T) {
	var data = buildOSD(t, FONT_INAV,
		&Frame{FrameIdx: 10},
		&Frame{FrameIdx: 11},
		&Frame{FrameIdx: 12},
	)

	var rd, err = NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	var fr *Frame

	fr, err = rd.Frame(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), fr.FrameIdx)

	fr, err = rd.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), fr.FrameIdx)

	_, err = rd.Frame(3)
	assert.ErrorIs(t, err, io.EOF)

	_, err = rd.Frame(-1)
	assert.Error(t, err)
}

// A truncated final record means the goggles lost power mid-write.
// It is treated as end of recording, not an error.
func TestReaderTruncatedFinalRecord(t *testing.T) {
	var data = buildOSD(t, FONT_BETAFLIGHT,
		&Frame{FrameIdx: 0},
		&Frame{FrameIdx: 1},
	)
	data = data[:len(data)-100]

	var rd, err = NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = rd.Next()
	require.NoError(t, err)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameCellAndLine(t *testing.T) {
	var fr = &Frame{}
	setCell(fr, 5, 3, 'A')

	var g, err = fr.Cell(5, 3)
	require.NoError(t, err)
	assert.Equal(t, Glyph('A'), g)

	var line []Glyph

	line, err = fr.Line(3)
	require.NoError(t, err)
	require.Len(t, line, MAX_X)
	assert.Equal(t, Glyph('A'), line[5])

	_, err = fr.Cell(MAX_X, 0)
	assert.Error(t, err)

	_, err = fr.Cell(0, MAX_Y)
	assert.Error(t, err)

	_, err = fr.Line(MAX_Y)
	assert.Error(t, err)
}

func TestGlyphToChar(t *testing.T) {
	tests := []struct {
		name     string
		glyph    Glyph
		expected rune
	}{
		{name: "empty cell", glyph: 0, expected: '~'},
		{name: "digit", glyph: '7', expected: '7'},
		{name: "letter", glyph: 'W', expected: 'W'},
		{name: "space", glyph: ' ', expected: ' '},
		{name: "icon glyph", glyph: 0x89, expected: 'u'},
		{name: "top of ascii range", glyph: 0x5f, expected: 'u'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GlyphToChar(tt.glyph))
		})
	}
}

func TestFrameString(t *testing.T) {
	var fr = &Frame{}
	placeString(fr, 0, 0, "HELLO")

	var s = fr.String()

	var lines = bytes.Split([]byte(s), []byte("\n"))
	require.GreaterOrEqual(t, len(lines), MAX_Y)
	assert.Equal(t, "HELLO"+string(bytes.Repeat([]byte("~"), MAX_X-5)), string(lines[0]))
}

func TestFrameHexDump(t *testing.T) {
	var fr = &Frame{}
	setCell(fr, 0, 0, 0x89)
	setCell(fr, 1, 0, 'A')

	var s = fr.HexDump()

	assert.Contains(t, s, "89|")
	assert.Contains(t, s, "A |")
}

func TestFontVariantString(t *testing.T) {
	assert.Equal(t, "BETAFLIGHT", FONT_BETAFLIGHT.String())
	assert.Equal(t, "INAV", FONT_INAV.String())
	assert.Equal(t, "UNKNOWN(99)", FontVariant(99).String())
}
