package models_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/compass/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCoordinates_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		coords models.Coordinates
		want   bool
	}{
		{"tokyo", models.Coordinates{Longitude: 139.7671, Latitude: 35.6812}, true},
		{"edges", models.Coordinates{Longitude: -180, Latitude: 90}, true},
		{"latitude out of range", models.Coordinates{Longitude: 10, Latitude: 91}, false},
		{"longitude out of range", models.Coordinates{Longitude: 180.5, Latitude: 0}, false},
		{"nan", models.Coordinates{Longitude: math.NaN(), Latitude: 0}, false},
		{"inf", models.Coordinates{Longitude: 0, Latitude: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coords.IsValid())
		})
	}
}
