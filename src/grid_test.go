package osd2csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tzneal/coordconv"
)

func TestHemisphereToRune(t *testing.T) {
	assert.Equal(t, 'N', HemisphereToRune(coordconv.HemisphereNorth))
	assert.Equal(t, 'S', HemisphereToRune(coordconv.HemisphereSouth))
	assert.Equal(t, '!', HemisphereToRune(coordconv.HemisphereInvalid))
}

func TestUTMColumns(t *testing.T) {
	var cols = utmColumns("42.662139", "-71.365553")

	assert.Equal(t, "19", cols[0])
	assert.Equal(t, "N", cols[1])
	assert.NotEmpty(t, cols[2])
	assert.NotEmpty(t, cols[3])
}

func TestUTMColumnsSouthernHemisphere(t *testing.T) {
	var cols = utmColumns("-33.8688", "151.2093")

	assert.Equal(t, "56", cols[0])
	assert.Equal(t, "S", cols[1])
}

func TestUTMColumnsUnparsable(t *testing.T) {
	tests := []struct {
		name string
		lat  string
		lon  string
	}{
		{name: "blank", lat: "", lon: ""},
		{name: "mangled run", lat: "47.1.2", lon: "-122.4"},
		{name: "colons from a clock", lat: "12:34", lon: "56:78"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{"", "", "", ""}, utmColumns(tt.lat, tt.lon))
		})
	}
}
