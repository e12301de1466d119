package models

import "encoding/json"

// Feature is a single geocoding result record.
type Feature struct {
	ID          string          `json:"Id"`          // ID is the address identifier.
	Gid         string          `json:"Gid"`         // Gid is the group identifier.
	Name        string          `json:"Name"`        // Name is the display label of the place.
	Description string          `json:"Description"` // Description is a free-form description.
	Geometry    Geometry        `json:"Geometry"`    // Geometry holds the location of the place.
	Property    json.RawMessage `json:"Property"`    // Property is provider specific extra data.
}

// Geometry describes where a feature is located.
type Geometry struct {
	Type string `json:"Type"` // Type is the shape tag, e.g. "point".
	// Coordinates is "longitude,latitude". Whitespace is not guaranteed to be trimmed.
	Coordinates string `json:"Coordinates"`
}
