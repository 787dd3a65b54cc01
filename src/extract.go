package osd2csv

/*------------------------------------------------------------------
 *
 * Purpose:	Pull telemetry values back out of rendered OSD frames.
 *
 * Description:	The recording holds no telemetry stream, only the
 *		character grid as drawn.  So we hunt for the marker
 *		glyph that sits next to each value on screen and
 *		collect the run of digit glyphs beside it.
 *
 *		Known limits, inherent to scraping a display:
 *
 *		  - Two values rendered with no gap between them run
 *		    together.  We return the mangled run as-is and
 *		    can't detect the collision.
 *
 *		  - Unit glyphs shared by several fields (meters, km,
 *		    the battery icon, ...) identify nothing by
 *		    themselves and are never decoded into a field.
 *
 *------------------------------------------------------------------*/

import (
	"slices"
	"strings"
)

/* Characters that may appear inside a value. */
const allowedValueChars = "0123456789.-: "

func allowedGlyph(g Glyph) bool {
	return g < 0x80 && strings.ContainsRune(allowedValueChars, rune(g))
}

func digitGlyph(g Glyph) bool {
	return g >= '0' && g <= '9'
}

// unpackDecimal expands INAV's packed digit-and-point glyphs.  Two
// adjacent packed glyphs share one point between them, so a little
// state (halfPoint) carries across cells; which glyph contributes the
// point flips with the read direction.
func unpackDecimal(g Glyph, reverse bool, halfPoint bool) ([]Glyph, bool) {
	switch {
	case g >= 0xA1 && g <= 0xAA:
		var d = '0' + g - 0xA1
		if reverse {
			if halfPoint {
				return []Glyph{d}, false
			}

			return []Glyph{'.', d}, false
		}

		return []Glyph{d, '.'}, true
	case g >= 0xB1 && g <= 0xBA:
		var d = '0' + g - 0xB1
		if reverse {
			return []Glyph{d, '.'}, true
		}

		if halfPoint {
			return []Glyph{d}, false
		}

		return []Glyph{'.', d}, false
	default:
		return []Glyph{g}, false
	}
}

/*------------------------------------------------------------------
 *
 * Function:	ExtractValue
 *
 * Purpose:	Collect the run of value characters next to the first
 *		occurrence of a marker glyph.
 *
 * Inputs:	font	- Glyph table in effect (decides whether
 *			  packed decimals apply).
 *
 *		tag	- Marker glyph to hunt for.
 *
 *		reverse	- Read leftward from the marker instead of
 *			  rightward.  INAV right-aligns some values
 *			  with the unit glyph after them.
 *
 * Returns:	The collected string with surrounding spaces trimmed
 *		(possibly empty), the glyph that terminated the run,
 *		and whether the marker was found at all.
 *
 *		A missing marker or an empty run is a soft miss, not
 *		an error.  Frames simply don't always show every
 *		field.
 *
 *------------------------------------------------------------------*/

func (fr *Frame) ExtractValue(font *Font, tag Glyph, reverse bool) (string, Glyph, bool) {
	var idx = slices.Index(fr.grid[:], tag)
	if idx < 0 {
		return "", 0, false
	}

	var x, y = idx / MAX_Y, idx % MAX_Y

	var line, _ = fr.Line(y)
	if reverse {
		slices.Reverse(line)

		x = MAX_X - 1 - x
	}

	var run []Glyph
	var next Glyph
	var halfPoint bool

	for i := x + 1; i < len(line); i++ {
		var g = line[i]

		var expanded []Glyph
		if font.PackedDecimals {
			expanded, halfPoint = unpackDecimal(g, reverse, halfPoint)
		} else {
			expanded = []Glyph{g}
		}

		var ok = true
		for _, e := range expanded {
			if !allowedGlyph(e) {
				ok = false
			}
		}

		if !ok {
			next = g
			break
		}

		run = append(run, expanded...)
	}

	if reverse {
		slices.Reverse(run)

		next = tag
	}

	var sb strings.Builder
	for _, g := range run {
		sb.WriteByte(byte(g))
	}

	return strings.TrimSpace(sb.String()), next, true
}

func (fr *Frame) ExtractLat(font *Font) (string, bool) {
	var v, _, found = fr.ExtractValue(font, font.Lat, false)
	return v, found && v != ""
}

func (fr *Frame) ExtractLon(font *Font) (string, bool) {
	var v, _, found = fr.ExtractValue(font, font.Lon, false)
	return v, found && v != ""
}

func (fr *Frame) ExtractAlt(font *Font) (string, bool) {
	var v, _, found = fr.ExtractValue(font, font.Alt, font.AltReverse)
	return v, found && v != ""
}

// ExtractSpeed tries each speed marker in the font's precedence order
// and takes the first one with a value after it.  No attempt is made
// to reconcile units if a font somehow shows more than one.
func (fr *Frame) ExtractSpeed(font *Font) (string, bool) {
	for _, tag := range font.Speed {
		if v, _, found := fr.ExtractValue(font, tag, font.SpeedReverse); found && v != "" {
			return v, true
		}
	}

	return "", false
}

func (fr *Frame) ExtractPower(font *Font) (string, bool) {
	if font.Power != 0 {
		var v, _, found = fr.ExtractValue(font, font.Power, font.PowerReverse)
		return v, found && v != ""
	}

	return fr.extractWatts()
}

/*------------------------------------------------------------------
 *
 * Function:	extractWatts
 *
 * Purpose:	Find a power readout on fonts that spell the unit with
 *		a plain ASCII 'W' instead of a dedicated marker glyph.
 *
 * Description:	A 'W' counts as the watts unit when the cell to its
 *		left holds a digit and the cell to its right is blank.
 *		Every digit to its left on that line is then collected.
 *		That sweeps up digits from unrelated readouts sharing
 *		the line; accepted, this is a screen scrape.
 *
 *------------------------------------------------------------------*/

func (fr *Frame) extractWatts() (string, bool) {
	for idx, g := range fr.grid {
		if g != 'W' {
			continue
		}

		var x, y = idx / MAX_Y, idx % MAX_Y
		if x < 1 || x >= MAX_X-1 {
			continue
		}

		if !digitGlyph(fr.grid[idx-MAX_Y]) {
			continue
		}

		if r := fr.grid[idx+MAX_Y]; r != 0 && r != ' ' {
			continue
		}

		var line, _ = fr.Line(y)

		var digits []byte
		for i := x; i >= 0; i-- {
			if digitGlyph(line[i]) {
				digits = append(digits, byte(line[i]))
			}
		}

		slices.Reverse(digits)

		return string(digits), true
	}

	return "", false
}

// Row is the set of telemetry fields recovered from one frame.
// Values are the raw strings as rendered on screen; an empty string
// means the field was absent or unreadable in that frame.
type Row struct {
	Lat   string
	Lon   string
	Alt   string
	Speed string
	Power string
}

func (r Row) Empty() bool {
	return r == Row{}
}

// Extract decodes one frame.  A frame showing no telemetry at all
// produces a zero Row; that is not an error.  Decoding is stateless,
// so the same frame always yields the same row.
func (font *Font) Extract(fr *Frame) Row {
	var r Row

	r.Lat, _ = fr.ExtractLat(font)
	r.Lon, _ = fr.ExtractLon(font)
	r.Alt, _ = fr.ExtractAlt(font)
	r.Speed, _ = fr.ExtractSpeed(font)
	r.Power, _ = fr.ExtractPower(font)

	return r
}
