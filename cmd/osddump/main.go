/* Inspect .osd (MSPOSD) goggle recordings: header info and rendered frame grids */
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	osd2csv "github.com/doismellburning/osd2csv/src"
)

func main() {
	var hexGrid = pflag.Bool("hex", false, "Render frames as a hex grid instead of printable characters")
	var frames = pflag.IntSlice("frame", nil, "Frame index to render (repeatable)")
	var all = pflag.Bool("all", false, "Render every frame")

	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: osddump [options] OSDFILE\n\n")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	var f, openErr = os.Open(pflag.Arg(0))
	if openErr != nil {
		log.Fatal("Can't open input file", "err", openErr)
	}
	defer f.Close()

	var rd, rdErr = osd2csv.NewReader(f)
	if rdErr != nil {
		log.Fatal("Can't read OSD recording", "err", rdErr)
	}

	var h = rd.Header

	fmt.Printf("version       %d\n", h.Version)
	fmt.Printf("char grid     %dx%d\n", h.CharWidth, h.CharHeight)
	fmt.Printf("font size     %dx%d\n", h.FontWidth, h.FontHeight)
	fmt.Printf("offset        %d,%d\n", h.XOffset, h.YOffset)
	fmt.Printf("font variant  %s\n", rd.Variant())

	switch {
	case *all:
		for {
			var fr, err = rd.Next()
			if errors.Is(err, io.EOF) {
				break
			}

			if err != nil {
				log.Fatal("Can't read frame", "err", err)
			}

			dump(fr, *hexGrid)
		}
	case len(*frames) > 0:
		for _, i := range *frames {
			var fr, err = rd.Frame(i)
			if errors.Is(err, io.EOF) {
				log.Error("No such frame", "frame", i)
				continue
			}

			if err != nil {
				log.Fatal("Can't read frame", "err", err)
			}

			dump(fr, *hexGrid)
		}
	default:
		// Just count frames so the header info has some context.
		var n = 0

		for {
			var _, err = rd.Next()
			if errors.Is(err, io.EOF) {
				break
			}

			if err != nil {
				log.Fatal("Can't read frame", "err", err)
			}

			n++
		}

		fmt.Printf("frames        %d\n", n)
	}
}

func dump(fr *osd2csv.Frame, hexGrid bool) {
	fmt.Printf("--- frame %d ---\n", fr.FrameIdx)

	if hexGrid {
		fmt.Print(fr.HexDump())
	} else {
		fmt.Print(fr.String())
	}
}
