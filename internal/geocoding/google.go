package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/UnknownOlympus/compass/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given Google Maps client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Resolve geocodes the query with the Google Maps Geocoding API and converts every
// result into a feature whose coordinates use the "longitude,latitude" format.
// Zero results yields an empty list.
func (gp *GoogleProvider) Resolve(ctx context.Context, query string) ([]models.Feature, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "query", query)

	req := maps.GeocodingRequest{Address: query}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to geocode address: %w", ErrRequestFailed, err)
	}

	features := make([]models.Feature, 0, len(results))
	for _, result := range results {
		location := result.Geometry.Location
		features = append(features, models.Feature{
			ID:          result.PlaceID,
			Name:        result.FormattedAddress,
			Description: result.Geometry.LocationType,
			Geometry: models.Geometry{
				Type:        "point",
				Coordinates: formatLngLat(location.Lng, location.Lat),
			},
		})
	}

	gp.log.DebugContext(ctx, "Google Maps results", "query", query, "count", len(features))

	return features, nil
}

func formatLngLat(lng, lat float64) string {
	return strconv.FormatFloat(lng, 'f', -1, 64) + "," + strconv.FormatFloat(lat, 'f', -1, 64)
}
