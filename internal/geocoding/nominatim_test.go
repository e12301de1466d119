package geocoding_test

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/compass/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestNominatimProvider_Resolve(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				assert.Equal(t, "Tokyo Station", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, geocoding.NominatimUserAgent, req.Header.Get("User-Agent"))

				return jsonResponse(http.StatusOK, `[
					{"place_id": 1234, "display_name": "東京駅, 丸の内", "type": "station",
					 "lat": "35.6812", "lon": "139.7671"},
					{"place_id": 5678, "display_name": "Tokyo Station Hotel", "type": "hotel",
					 "lat": "35.6810", "lon": "139.7660"}
				]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.NoError(t, err)
		require.Len(t, features, 2)
		assert.Equal(t, "1234", features[0].ID)
		assert.Equal(t, "東京駅, 丸の内", features[0].Name)
		assert.Equal(t, "station", features[0].Description)
		assert.Equal(t, "139.7671,35.6812", features[0].Geometry.Coordinates)
	})

	t.Run("empty response from API", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `[]`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "nowhere at all")

		require.NoError(t, err)
		assert.Empty(t, features)
	})

	t.Run("API returns error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusTooManyRequests, `slow down`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrUnexpectedStatus)
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("network error")
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrRequestFailed)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"invalid json`), nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrMalformedResponse)
	})
}
