/* Parse GPS data from .osd (MSPOSD) goggle recordings into a CSV track */
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	osd2csv "github.com/doismellburning/osd2csv/src"
)

func main() {
	var output = pflag.StringP("output", "o", "output.csv", "Output .csv file")
	var force = pflag.BoolP("force", "f", false, "Force overwrite of the output file if it exists")
	var fps = pflag.Int("fps", osd2csv.DEFAULT_FPS, "Video frame rate, used to derive the time_ms column")
	var onError = pflag.String("on-error", "prev", "What to do when a frame is missing a value: prev|skip|empty")
	var fontConfig = pflag.String("font-config", "", "YAML file overriding glyph codes, for remapped fonts")
	var utm = pflag.Bool("utm", false, "Append UTM zone/hemisphere/easting/northing columns")
	var timestampFormat = pflag.StringP("timestamp-format", "T", "", "Append a wall clock column in 'strftime' format (needs --start-time)")
	var startTime = pflag.String("start-time", "", "Recording start time (RFC 3339), anchors the wall clock column")

	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: osd2csv [options] OSDFILE\n\n")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	var fill, fillErr = osd2csv.ParseFillMode(*onError)
	if fillErr != nil {
		log.Fatal("Bad --on-error value", "err", fillErr)
	}

	var opts = osd2csv.TrackOptions{
		FPS:             *fps,
		Fill:            fill,
		UTM:             *utm,
		TimestampFormat: *timestampFormat,
	}

	if *timestampFormat != "" {
		if *startTime == "" {
			log.Fatal("--timestamp-format needs --start-time to anchor frame 0")
		}

		var err error

		opts.StartTime, err = time.Parse(time.RFC3339, *startTime)
		if err != nil {
			log.Fatal("Bad --start-time value", "err", err)
		}
	}

	if *fontConfig != "" {
		var fc, err = osd2csv.LoadFontConfig(*fontConfig)
		if err != nil {
			log.Fatal("Can't load font config", "err", err)
		}

		opts.Fonts = fc
	}

	if _, err := os.Stat(*output); err == nil && !*force {
		log.Fatal("Output file already exists, use -f to overwrite", "file", *output)
	}

	var in, openErr = os.Open(pflag.Arg(0))
	if openErr != nil {
		log.Fatal("Can't open input file", "err", openErr)
	}
	defer in.Close()

	var trk, trkErr = osd2csv.ReadTrack(in, opts)
	if trkErr != nil {
		log.Fatal("Can't read OSD recording", "err", trkErr)
	}

	var out, createErr = os.Create(*output)
	if createErr != nil {
		log.Fatal("Can't create output file", "err", createErr)
	}

	if err := trk.WriteCSV(out); err != nil {
		out.Close()
		log.Fatal("Can't write CSV", "err", err)
	}

	if err := out.Close(); err != nil {
		log.Fatal("Can't write CSV", "err", err)
	}

	log.Info("File written", "file", *output, "points", len(trk.Points()))
}
