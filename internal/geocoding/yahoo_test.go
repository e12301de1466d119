package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/compass/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const tokyoStationResponse = `{
	"ResultInfo": {"Count": 1, "Total": 1, "Start": 1, "Status": 200},
	"Feature": [{
		"Id": "13101.7.1",
		"Gid": "",
		"Name": "Tokyo Station",
		"Description": "",
		"Geometry": {"Type": "point", "Coordinates": "139.7671,35.6812"},
		"Property": {"Address": "東京都千代田区丸の内1丁目"}
	}]
}`

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestYahooProvider_Resolve(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), geocoding.YahooBaseURL)
				assert.Equal(t, "Tokyo Station", req.URL.Query().Get("query"))
				assert.Equal(t, "json", req.URL.Query().Get("output"))
				assert.False(t, req.URL.Query().Has("appid"))

				return jsonResponse(http.StatusOK, tokyoStationResponse), nil
			},
		}

		provider := geocoding.NewYahooProviderWithClient(mockClient, "", "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.NoError(t, err)
		require.Len(t, features, 1)
		assert.Equal(t, "13101.7.1", features[0].ID)
		assert.Equal(t, "Tokyo Station", features[0].Name)
		assert.Equal(t, "point", features[0].Geometry.Type)
		assert.Equal(t, "139.7671,35.6812", features[0].Geometry.Coordinates)
		assert.JSONEq(t, `{"Address": "東京都千代田区丸の内1丁目"}`, string(features[0].Property))
	})

	t.Run("app id and custom endpoint", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "geo.example.com", req.URL.Host)
				assert.Equal(t, "my-app-id", req.URL.Query().Get("appid"))

				return jsonResponse(http.StatusOK, tokyoStationResponse), nil
			},
		}

		provider := geocoding.NewYahooProviderWithClient(
			mockClient, "https://geo.example.com/geoCoder", "my-app-id", defaultRL, logger,
		)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.NoError(t, err)
		assert.Len(t, features, 1)
	})

	t.Run("list is empty exactly when count is zero", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			want int
		}{
			{"count zero", `{"ResultInfo":{"Count":0},"Feature":[]}`, 0},
			{"count zero ignores features", `{"ResultInfo":{"Count":0},"Feature":[{"Name":"x"}]}`, 0},
			{"no result info", `{}`, 0},
			{"count two", `{"ResultInfo":{"Count":2},"Feature":[{"Name":"a"},{"Name":"b"}]}`, 2},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockClient := &mockHTTPClient{
					doFunc: func(_ *http.Request) (*http.Response, error) {
						return jsonResponse(http.StatusOK, tt.body), nil
					},
				}

				provider := geocoding.NewYahooProviderWithClient(mockClient, "", "", defaultRL, logger)
				features, err := provider.Resolve(ctx, "")

				require.NoError(t, err)
				require.NotNil(t, features)
				assert.Len(t, features, tt.want)
			})
		}
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		provider := geocoding.NewYahooProviderWithClient(mockClient, "", "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrRequestFailed)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("non 2xx status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusServiceUnavailable, `upstream down`), nil
			},
		}

		provider := geocoding.NewYahooProviderWithClient(mockClient, "", "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrUnexpectedStatus)
		assert.ErrorContains(t, err, "503")
	})

	t.Run("malformed body", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `<html>not json</html>`), nil
			},
		}

		provider := geocoding.NewYahooProviderWithClient(mockClient, "", "", defaultRL, logger)
		features, err := provider.Resolve(ctx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrMalformedResponse)
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel()
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return &http.Response{}, nil
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)

		provider := geocoding.NewYahooProviderWithClient(mockClient, "", "", limiter, logger)
		features, err := provider.Resolve(rateCtx, "Tokyo Station")

		require.Error(t, err)
		assert.Nil(t, features)
		assert.ErrorIs(t, err, geocoding.ErrRequestFailed)
		assert.ErrorContains(t, err, "rate limit exceeded")
	})
}
