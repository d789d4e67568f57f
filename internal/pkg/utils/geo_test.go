package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Barcelona -> Madrid
	d := HaversineDistance(41.3851, 2.1734, 40.4168, -3.7038)
	assert.InDelta(t, 505, d, 5)

	assert.Zero(t, HaversineDistance(12.97, 77.59, 12.97, 77.59))
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLat float64
		wantLon float64
		wantOK  bool
	}{
		{"plain pair", "12.9716,77.5946", 12.9716, 77.5946, true},
		{"with spaces", " 41.38 , 2.17 ", 41.38, 2.17, true},
		{"address", "Plaça de Catalunya, Barcelona", 0, 0, false},
		{"out of range", "91,10", 0, 0, false},
		{"single value", "41.38", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := ParseCoordinates(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLat, lat)
			assert.Equal(t, tt.wantLon, lon)
		})
	}
}
