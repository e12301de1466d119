package models

import "math"

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
}

// IsValid reports whether both values are finite and within the WGS84 ranges.
func (c Coordinates) IsValid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
