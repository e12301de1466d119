package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/compass/internal/models"
	"golang.org/x/time/rate"
)

// Provider is an interface that defines a method for resolving a free-form query.
// Resolve returns the provider's result list unmodified, an empty list when nothing
// matched, and an error only when the lookup itself failed.
type Provider interface {
	Resolve(ctx context.Context, query string) ([]models.Feature, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Errors shared by the HTTP based providers. They let callers tell a failed
// lookup apart from an empty result.
var (
	ErrRequestFailed     = errors.New("geocoding request failed")
	ErrUnexpectedStatus  = errors.New("geocoding API returned unexpected status")
	ErrMalformedResponse = errors.New("geocoding API returned malformed response")
)

// newLimiter returns a limiter allowing rps requests per second.
// A non-positive rps disables limiting.
func newLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	return rate.NewLimiter(rate.Limit(rps), rps)
}
