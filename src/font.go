package osd2csv

/*------------------------------------------------------------------
 *
 * Purpose:	Glyph tables for the OSD fonts we can decode.
 *
 * Description:	Marker glyph codes were collected by eyeballing hex
 *		dumps of real recordings against the firmware symbol
 *		tables.  INAV's are documented in
 *		https://github.com/iNavFlight/inav/blob/master/src/main/drivers/osd_symbols.h
 *		Betaflight's came from observation.
 *
 *		Users fly remapped custom fonts, so the built-in
 *		tables can be overridden per variant from a small
 *		YAML file.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Betaflight marker glyphs. */
const (
	BF_ALT   Glyph = 0x7F
	BF_LAT   Glyph = 0x89
	BF_LON   Glyph = 0x98
	BF_SPEED Glyph = 0x70
)

/*
 * Betaflight unit and status glyphs.  None of these uniquely
 * identifies a field (meters could be altitude or home distance, the
 * battery icon sits next to several readouts), so none of them is
 * decoded into anything.  Listed so hex dumps are easier to read.
 */
const (
	BF_AMP   Glyph = 0x9A
	BF_VOLT  Glyph = 0x06
	BF_MAH   Glyph = 0x07
	BF_METER Glyph = 0x0C
	BF_KM    Glyph = 0x7D
	BF_MI    Glyph = 0x7E
	BF_MPH   Glyph = 0x9D
	BF_KMPH  Glyph = 0x9E
	BF_MPS   Glyph = 0x9F
	BF_LQ    Glyph = 0x7B
	BF_RSSI  Glyph = 0x01
	BF_SAT1  Glyph = 0x1E
	BF_SAT2  Glyph = 0x1F
	BF_HOME  Glyph = 0x11
	BF_TRIP  Glyph = 0x71
	BF_BAT0  Glyph = 0x90 /* Battery icon, empty... */
	BF_BAT6  Glyph = 0x96 /* ...through full. */
	BF_BAT   Glyph = 0x97
)

/* INAV marker glyphs. */
const (
	INAV_LAT        Glyph = 0x03
	INAV_LON        Glyph = 0x04
	INAV_WATT       Glyph = 0x71
	INAV_ALT        Glyph = 0x76
	INAV_SPEED_KMPH Glyph = 0x90
	INAV_SPEED_MPH  Glyph = 0x91
	INAV_SPEED_KT   Glyph = 0x92
)

// Font describes how one firmware family lays its telemetry out on
// the grid: which glyph marks each field and which direction the
// value is read in.  Built once at startup and never mutated.
type Font struct {
	Variant FontVariant

	Lat   Glyph
	Lon   Glyph
	Alt   Glyph
	Speed []Glyph /* Tried in order; first marker with a value wins. */
	Power Glyph   /* 0 means no marker exists; use the watts context heuristic. */

	AltReverse   bool
	SpeedReverse bool
	PowerReverse bool

	// INAV packs a digit and a decimal point into single glyphs
	// (0xA1..0xAA digit-then-point, 0xB1..0xBA point-then-digit).
	PackedDecimals bool
}

func BetaflightFont() *Font {
	return &Font{
		Variant: FONT_BETAFLIGHT,
		Lat:     BF_LAT,
		Lon:     BF_LON,
		Alt:     BF_ALT,
		Speed:   []Glyph{BF_SPEED},
	}
}

func InavFont() *Font {
	return &Font{
		Variant:        FONT_INAV,
		Lat:            INAV_LAT,
		Lon:            INAV_LON,
		Alt:            INAV_ALT,
		Speed:          []Glyph{INAV_SPEED_KMPH, INAV_SPEED_MPH, INAV_SPEED_KT},
		Power:          INAV_WATT,
		AltReverse:     true,
		SpeedReverse:   true,
		PowerReverse:   true,
		PackedDecimals: true,
	}
}

// FontForVariant returns the built-in glyph table for a recording's
// font variant, or an error for variants nobody has mapped yet.
func FontForVariant(v FontVariant) (*Font, error) {
	switch v {
	case FONT_BETAFLIGHT:
		return BetaflightFont(), nil
	case FONT_INAV:
		return InavFont(), nil
	default:
		return nil, fmt.Errorf("font variant %s not supported yet", v)
	}
}

type fontOverrides struct {
	Lat   *uint16  `yaml:"lat"`
	Lon   *uint16  `yaml:"lon"`
	Alt   *uint16  `yaml:"alt"`
	Speed []uint16 `yaml:"speed"`
	Power *uint16  `yaml:"power"`
}

// FontConfig holds per-variant glyph code overrides loaded from a
// YAML file, for recordings made with remapped fonts.  A nil
// *FontConfig just yields the built-in tables.
type FontConfig struct {
	Betaflight *fontOverrides `yaml:"betaflight"`
	Inav       *fontOverrides `yaml:"inav"`
}

func LoadFontConfig(path string) (*FontConfig, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font config: %w", err)
	}

	var fc FontConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing font config %q: %w", path, err)
	}

	return &fc, nil
}

// FontForVariant returns the glyph table for the variant with any
// overrides from the config applied on top of the built-in table.
func (fc *FontConfig) FontForVariant(v FontVariant) (*Font, error) {
	var font, err = FontForVariant(v)
	if err != nil || fc == nil {
		return font, err
	}

	var o *fontOverrides

	switch v {
	case FONT_BETAFLIGHT:
		o = fc.Betaflight
	case FONT_INAV:
		o = fc.Inav
	}

	if o == nil {
		return font, nil
	}

	if o.Lat != nil {
		font.Lat = Glyph(*o.Lat)
	}

	if o.Lon != nil {
		font.Lon = Glyph(*o.Lon)
	}

	if o.Alt != nil {
		font.Alt = Glyph(*o.Alt)
	}

	if len(o.Speed) > 0 {
		font.Speed = make([]Glyph, len(o.Speed))
		for i, s := range o.Speed {
			font.Speed[i] = Glyph(s)
		}
	}

	if o.Power != nil {
		font.Power = Glyph(*o.Power)
	}

	return font, nil
}
