package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the map search service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - HTTPPort: The port of the search UI server.
// - HealthPort: The port for the monitoring server.
// - Provider: Settings of the geocoding provider.
// - StrictCoordinates: Whether unparsable coordinates are reported instead of shown.
type Config struct {
	Env               string         `yaml:"env"`                // Env is the current environment: local, development, production.
	HTTPPort          int            `yaml:"http.port"`          // HTTPPort is the search UI server port.
	HealthPort        int            `yaml:"health.port"`        // HealthPort is the monitoring server port.
	Provider          ProviderConfig `yaml:"provider"`           // Provider holds the geocoding provider configuration.
	StrictCoordinates bool           `yaml:"strict_coordinates"` // Reject results whose coordinates do not parse.
}

// ProviderConfig holds the settings of the geocoding provider.
type ProviderConfig struct {
	Type      string        `yaml:"type"`       // Type is one of yahoo, google, nominatim.
	URL       string        `yaml:"url"`        // URL overrides the provider endpoint.
	APIKey    string        `yaml:"api_key"`    // APIKey for the provider (appid for yahoo).
	RateLimit int           `yaml:"rate_limit"` // RateLimit in requests per second.
	Timeout   time.Duration `yaml:"timeout"`    // Timeout of one outbound request.
}

// MustLoad loads the configuration from the environment, falling back to the given
// dotenv files (".env" when none are given). Variables already present in the
// environment take precedence over the files, earlier files take precedence over
// later ones, and a missing file is skipped without dropping the others.
func MustLoad(files ...string) *Config {
	dotenv := readDotenv(files)

	get := func(key, override string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		if value, exists := dotenv[key]; exists {
			return value
		}
		return override
	}

	httpPort, err := strconv.Atoi(get("COMPASS_HTTP_PORT", "8000"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	healthPort, err := strconv.Atoi(get("COMPASS_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := strconv.Atoi(get("COMPASS_RATE_LIMIT", "5"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer types")
	}

	timeout, err := time.ParseDuration(get("COMPASS_REQUEST_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	strict, err := strconv.ParseBool(get("COMPASS_STRICT_COORDINATES", "true"))
	if err != nil {
		panic("failed to parse strict coordinates flag from configuration, must be a boolean")
	}

	return &Config{
		Env:        get("COMPASS_ENV", "production"),
		HTTPPort:   httpPort,
		HealthPort: healthPort,
		Provider: ProviderConfig{
			Type:      get("COMPASS_PROVIDER_TYPE", "yahoo"),
			URL:       get("COMPASS_PROVIDER_URL", ""),
			APIKey:    get("COMPASS_PROVIDER_KEY", ""),
			RateLimit: rateLimit,
			Timeout:   timeout,
		},
		StrictCoordinates: strict,
	}
}

func readDotenv(files []string) map[string]string {
	if len(files) == 0 {
		files = []string{".env"}
	}

	merged := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			continue
		}
		for key, value := range values {
			if _, exists := merged[key]; !exists {
				merged[key] = value
			}
		}
	}

	return merged
}
