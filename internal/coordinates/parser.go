// Package coordinates converts geocoder coordinate strings into numeric pairs.
package coordinates

import (
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/compass/internal/models"
)

// Parse converts a "longitude,latitude" string into coordinates.
//
// Surrounding whitespace is stripped and the string is split on commas; the first
// token is the longitude, the second the latitude, and any further tokens are ignored.
// A token that is missing or not numeric becomes NaN instead of an error, so callers
// that need a usable point must check the result with Coordinates.IsValid.
func Parse(raw string) models.Coordinates {
	tokens := strings.Split(strings.TrimSpace(raw), ",")

	coords := models.Coordinates{Longitude: parseToken(tokens[0]), Latitude: math.NaN()}
	if len(tokens) > 1 {
		coords.Latitude = parseToken(tokens[1])
	}

	return coords
}

func parseToken(token string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return math.NaN()
	}

	return value
}
