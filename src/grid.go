package osd2csv

// Utilities for working with https://github.com/tzneal/coordconv

import (
	"math"
	"strconv"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

func HemisphereToRune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	case coordconv.HemisphereInvalid:
		return '!'
	default:
		return '?'
	}
}

func D2R(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// utmColumns converts decoded latitude/longitude strings into the
// four UTM column values.  The inputs came off a screen scrape, so
// anything unparsable just yields blank columns.
func utmColumns(lat string, lon string) []string {
	var blank = []string{"", "", "", ""}

	var latF, latErr = strconv.ParseFloat(lat, 64)

	var lonF, lonErr = strconv.ParseFloat(lon, 64)

	if latErr != nil || lonErr != nil {
		return blank
	}

	var latlng = s2.LatLng{
		Lat: s1.Angle(D2R(latF)),
		Lng: s1.Angle(D2R(lonF)),
	}

	var utmCoord, err = coordconv.DefaultUTMConverter.ConvertFromGeodetic(latlng, 0)
	if err != nil {
		return blank
	}

	return []string{
		strconv.Itoa(int(utmCoord.Zone)),
		string(HemisphereToRune(utmCoord.Hemisphere)),
		strconv.FormatFloat(utmCoord.Easting, 'f', 0, 64),
		strconv.FormatFloat(utmCoord.Northing, 'f', 0, 64),
	}
}
