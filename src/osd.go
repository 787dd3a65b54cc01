package osd2csv

/*------------------------------------------------------------------
 *
 * Purpose:	Read .osd overlay recordings produced by MSP-OSD on
 *		DJI goggles.
 *
 * Description:	The file is a small fixed header followed by a
 *		sequence of fixed-size frame records.  Each record is
 *		a snapshot of the 60x22 character grid the goggles
 *		were displaying at that moment, one uint16 glyph code
 *		per cell, stored column-major.
 *
 *		The layout is reverse engineered.  Nothing here is
 *		authoritative beyond "it matches the files we have".
 *
 *------------------------------------------------------------------*/

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const OSD_VERSION = 1

var OSD_MAGIC = []byte("MSPOSD\x00")

const (
	MAX_X = 60 /* Grid columns. */
	MAX_Y = 22 /* Grid rows. */
	MAX_T = MAX_X * MAX_Y
)

const (
	fileHeaderSize  = 18 /* magic + version + geometry + variant, packed LE. */
	frameHeaderSize = 8  /* frame_idx + size. */
	frameRecordSize = frameHeaderSize + MAX_T*2
)

// FontVariant identifies which flight controller firmware drew the
// overlay.  It decides which glyph table applies.
type FontVariant uint8

const (
	FONT_GENERIC FontVariant = iota
	FONT_BETAFLIGHT
	FONT_INAV
	FONT_ARDUPILOT
	FONT_KISS_ULTRA
	FONT_QUICKSILVER
)

func (v FontVariant) String() string {
	switch v {
	case FONT_GENERIC:
		return "GENERIC"
	case FONT_BETAFLIGHT:
		return "BETAFLIGHT"
	case FONT_INAV:
		return "INAV"
	case FONT_ARDUPILOT:
		return "ARDUPILOT"
	case FONT_KISS_ULTRA:
		return "KISS_ULTRA"
	case FONT_QUICKSILVER:
		return "QUICKSILVER"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(v))
	}
}

// Header is the fixed file header at the start of a .osd recording.
// Field order and widths match the on-disk layout, so it can be read
// directly with encoding/binary.
type Header struct {
	Magic       [7]byte
	Version     uint16
	CharWidth   uint8
	CharHeight  uint8
	FontWidth   uint8
	FontHeight  uint8
	XOffset     uint16
	YOffset     uint16
	FontVariant uint8
}

// Reader reads frames out of a .osd recording.  Frames can be read
// sequentially with Next or at random with Frame.
type Reader struct {
	f      io.ReadSeeker
	Header Header
	next   int
}

func NewReader(f io.ReadSeeker) (*Reader, error) {
	var rd = &Reader{f: f}

	if err := binary.Read(f, binary.LittleEndian, &rd.Header); err != nil {
		return nil, fmt.Errorf("reading OSD file header: %w", err)
	}

	if !bytes.Equal(rd.Header.Magic[:], OSD_MAGIC) {
		return nil, fmt.Errorf("incorrect magic in file header, expected %q, got %q", OSD_MAGIC, rd.Header.Magic[:])
	}

	if rd.Header.Version != OSD_VERSION {
		return nil, fmt.Errorf("invalid osd file version, expected %d, got %d", OSD_VERSION, rd.Header.Version)
	}

	return rd, nil
}

func (rd *Reader) Variant() FontVariant {
	return FontVariant(rd.Header.FontVariant)
}

// Frame reads the frame record at the given index.  Returns io.EOF at
// or past the end of the recording; a truncated final record also
// counts as end of recording.
func (rd *Reader) Frame(index int) (*Frame, error) {
	if index < 0 {
		return nil, fmt.Errorf("frame index %d out of range", index)
	}

	var offset = int64(fileHeaderSize) + int64(frameRecordSize)*int64(index)
	if _, err := rd.f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to frame %d: %w", index, err)
	}

	var data = make([]byte, frameRecordSize)
	if _, err := io.ReadFull(rd.f, data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("reading frame %d: %w", index, err)
	}

	var fr = &Frame{
		FrameIdx: binary.LittleEndian.Uint32(data[0:4]),
		Size:     binary.LittleEndian.Uint32(data[4:8]),
	}

	for i := range fr.grid {
		fr.grid[i] = Glyph(binary.LittleEndian.Uint16(data[frameHeaderSize+i*2:]))
	}

	return fr, nil
}

// Next returns the next frame in sequence, or io.EOF.
func (rd *Reader) Next() (*Frame, error) {
	var fr, err = rd.Frame(rd.next)
	if err != nil {
		return nil, err
	}

	rd.next++

	return fr, nil
}

// Rewind resets the sequential read position back to the first frame.
func (rd *Reader) Rewind() {
	rd.next = 0
}
