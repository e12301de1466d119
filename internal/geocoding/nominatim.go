package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/compass/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimUserAgent identifies the service as the Nominatim usage policy requires:
// https://operations.osmfoundation.org/policies/nominatim/
const NominatimUserAgent = "Compass-Map-Search/1.0 (https://github.com/UnknownOlympus/compass)"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the Nominatim API
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Rate limiter
	userAgent string
}

// nominatimResponse represents a single entry of the JSON response from Nominatim API.
type nominatimResponse struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Lat         string `json:"lat"` // Latitude as string
	Lon         string `json:"lon"` // Longitude as string
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(baseURL string, timeout time.Duration, log *slog.Logger) *NominatimProvider {
	// Fair use allows one request per second.
	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout}, baseURL, newLimiter(1), log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}

	return &NominatimProvider{
		client:    client,
		baseURL:   baseURL,
		log:       log,
		limiter:   limiter,
		userAgent: NominatimUserAgent,
	}
}

// Resolve searches Nominatim for the query and converts each match into a feature.
func (np *NominatimProvider) Resolve(ctx context.Context, query string) ([]models.Feature, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit exceeded: %w", ErrRequestFailed, err)
	}

	np.log.DebugContext(ctx, "Geocoding using Nominatim", "query", query)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("format", "json")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", "ja,en")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	features := make([]models.Feature, 0, len(results))
	for _, result := range results {
		features = append(features, models.Feature{
			ID:          strconv.FormatInt(result.PlaceID, 10),
			Name:        result.DisplayName,
			Description: result.Type,
			Geometry: models.Geometry{
				Type:        "point",
				Coordinates: result.Lon + "," + result.Lat,
			},
		})
	}

	return features, nil
}
