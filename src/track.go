package osd2csv

/*------------------------------------------------------------------
 *
 * Purpose:	Assemble decoded rows into a flight track and write it
 *		out as CSV.
 *
 * Description:	One row per kept frame.  Rather than the raw,
 *		sometimes rather cryptic, grid contents, we write
 *		separated properties into CSV format for easy reading
 *		and later processing.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
)

// FillMode says what to do about frames where only some fields
// decoded.  Glyph ambiguity is permanent, not transient, so there is
// no retry; just a policy for the holes.
type FillMode int

const (
	FillPrev  FillMode = iota /* Repeat the last good value. */
	FillSkip                  /* Drop frames missing any field. */
	FillEmpty                 /* Leave missing fields blank. */
)

func ParseFillMode(s string) (FillMode, error) {
	switch s {
	case "prev":
		return FillPrev, nil
	case "skip":
		return FillSkip, nil
	case "empty":
		return FillEmpty, nil
	default:
		return FillPrev, fmt.Errorf("unknown fill mode %q, want prev, skip or empty", s)
	}
}

const DEFAULT_FPS = 60

type TrackOptions struct {
	FPS   int      /* Video frame rate, for the time_ms column.  0 means DEFAULT_FPS. */
	Fill  FillMode /* Hole policy for partially decoded frames. */
	Fonts *FontConfig
	UTM   bool /* Append UTM zone/hemisphere/easting/northing columns. */

	// A wall clock column is appended when TimestampFormat is a
	// non-empty 'strftime' format string; StartTime anchors frame 0.
	TimestampFormat string
	StartTime       time.Time
}

// Point is one kept frame's worth of telemetry.  Values stay as the
// raw on-screen strings; no unit conversion is attempted because the
// unit glyphs are ambiguous.
type Point struct {
	Lat    string
	Lon    string
	Alt    string
	Speed  string
	Power  string
	TimeMS int64
}

type Track struct {
	points []Point
	opts   TrackOptions
}

func (trk *Track) Points() []Point {
	return trk.points
}

/*------------------------------------------------------------------
 *
 * Function:	ReadTrack
 *
 * Purpose:	Decode every frame of a recording into a track.
 *
 * Description:	Frames showing no telemetry at all are dropped, except
 *		in FillEmpty mode where they become blank rows so the
 *		output stays frame-aligned.  A frame that decodes
 *		badly is never fatal; the scan always continues.
 *
 *------------------------------------------------------------------*/

func ReadTrack(f io.ReadSeeker, opts TrackOptions) (*Track, error) {
	if opts.FPS == 0 {
		opts.FPS = DEFAULT_FPS
	}

	var rd, err = NewReader(f)
	if err != nil {
		return nil, err
	}

	var font *Font

	font, err = opts.Fonts.FontForVariant(rd.Variant())
	if err != nil {
		return nil, err
	}

	var trk = &Track{opts: opts}

	var prev Point

	for {
		var fr, frErr = rd.Next()
		if errors.Is(frErr, io.EOF) {
			break
		}

		if frErr != nil {
			return nil, frErr
		}

		var row = font.Extract(fr)

		if row.Empty() && opts.Fill != FillEmpty {
			continue
		}

		switch opts.Fill {
		case FillSkip:
			if row.Lat == "" || row.Lon == "" || row.Alt == "" || row.Speed == "" || row.Power == "" {
				continue
			}
		case FillPrev:
			if row.Lat == "" {
				row.Lat = prev.Lat
			}

			if row.Lon == "" {
				row.Lon = prev.Lon
			}

			if row.Alt == "" {
				row.Alt = prev.Alt
			}

			if row.Speed == "" {
				row.Speed = prev.Speed
			}

			if row.Power == "" {
				row.Power = prev.Power
			}
		case FillEmpty:
			// Blanks stay blank.
		}

		var pt = Point{
			Lat:    row.Lat,
			Lon:    row.Lon,
			Alt:    row.Alt,
			Speed:  row.Speed,
			Power:  row.Power,
			TimeMS: int64(fr.FrameIdx) * 1000 / int64(opts.FPS),
		}

		trk.points = append(trk.points, pt)
		prev = pt
	}

	return trk, nil
}

func (trk *Track) WriteCSV(w io.Writer) error {
	var cw = csv.NewWriter(w)

	var header = []string{"latitude", "longitude", "altitude", "speed", "time_ms", "power"}

	if trk.opts.TimestampFormat != "" {
		header = append(header, "time")
	}

	if trk.opts.UTM {
		header = append(header, "utm_zone", "utm_hemisphere", "utm_easting", "utm_northing")
	}

	if err := cw.Write(header); err != nil {
		return err
	}

	for _, pt := range trk.points {
		var rec = []string{
			pt.Lat,
			pt.Lon,
			pt.Alt,
			pt.Speed,
			strconv.FormatInt(pt.TimeMS, 10),
			pt.Power,
		}

		if trk.opts.TimestampFormat != "" {
			var at = trk.opts.StartTime.Add(time.Duration(pt.TimeMS) * time.Millisecond)

			var ts, err = strftime.Format(trk.opts.TimestampFormat, at)
			if err != nil {
				return fmt.Errorf("formatting timestamp: %w", err)
			}

			rec = append(rec, ts)
		}

		if trk.opts.UTM {
			rec = append(rec, utmColumns(pt.Lat, pt.Lon)...)
		}

		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
