package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/compass/internal/models"
	"golang.org/x/time/rate"
)

// YahooBaseURL is the geocoder endpoint used when none is configured.
const YahooBaseURL = "https://kuruton0714-eval-test.apigee.net/yahoo_map/geocode/V1/geoCoder"

// YahooProvider resolves queries with the Yahoo! geocoder API (or a proxy speaking its format).
type YahooProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Endpoint of the geocoder
	appID   string        // Optional application id, sent as appid
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// yahooResponse is the subset of the geocoder reply the service reads.
type yahooResponse struct {
	ResultInfo struct {
		Count  int `json:"Count"`
		Total  int `json:"Total"`
		Start  int `json:"Start"`
		Status int `json:"Status"`
	} `json:"ResultInfo"`
	Feature []models.Feature `json:"Feature"`
}

// NewYahooProvider creates a provider with its own HTTP client.
// An empty baseURL selects YahooBaseURL.
func NewYahooProvider(
	baseURL, appID string,
	timeout time.Duration,
	rateLimit int,
	log *slog.Logger,
) *YahooProvider {
	return NewYahooProviderWithClient(
		&http.Client{Timeout: timeout},
		baseURL,
		appID,
		newLimiter(rateLimit),
		log,
	)
}

// NewYahooProviderWithClient allows injecting custom HTTP client and limiter.
func NewYahooProviderWithClient(
	client HTTPClient,
	baseURL, appID string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *YahooProvider {
	if baseURL == "" {
		baseURL = YahooBaseURL
	}

	return &YahooProvider{
		client:  client,
		baseURL: baseURL,
		appID:   appID,
		log:     log,
		limiter: limiter,
	}
}

// Resolve sends the query to the geocoder and returns its feature list.
// When the reply declares zero results the list is empty and the error is nil.
func (yp *YahooProvider) Resolve(ctx context.Context, query string) ([]models.Feature, error) {
	if err := yp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit exceeded: %w", ErrRequestFailed, err)
	}

	yp.log.DebugContext(ctx, "Geocoding using Yahoo", "query", query)

	reqURL, err := url.Parse(yp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("query", query)
	params.Set("output", "json")
	if yp.appID != "" {
		params.Set("appid", yp.appID)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := yp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		yp.log.ErrorContext(ctx, "Yahoo API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	yp.log.DebugContext(ctx, "Yahoo raw response", "body", string(body))

	var result yahooResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if result.ResultInfo.Count <= 0 {
		return []models.Feature{}, nil
	}

	return result.Feature, nil
}
