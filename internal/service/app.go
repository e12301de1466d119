package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/compass/internal/coordinates"
	"github.com/UnknownOlympus/compass/internal/geocoding"
	"github.com/UnknownOlympus/compass/internal/mapview"
	"github.com/UnknownOlympus/compass/internal/metrics"
	"github.com/UnknownOlympus/compass/internal/models"
)

// Result texts shown under the search form.
const (
	TextNotFound = "正しい住所を入力してください"
	TextFailed   = "検索に失敗しました。時間をおいて再度お試しください"
	TextInvalid  = "位置情報を取得できませんでした"
)

// Status tags the outcome of a lookup.
type Status string

const (
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
	StatusInvalid Status = "invalid"
)

// Outcome is the result of one submission.
type Outcome struct {
	Seq         uint64              `json:"seq"`
	Status      Status              `json:"status"`
	Text        string              `json:"text"`
	Stale       bool                `json:"stale"`
	Feature     *models.Feature     `json:"feature,omitempty"`
	Coordinates *models.Coordinates `json:"-"`
}

// App owns the map controller and runs the search flow against it.
type App struct {
	log          *slog.Logger        // Logger for logging service activities
	provider     geocoding.Provider  // Geocoding provider used to resolve queries
	providerName string              // Name of the provider for metrics labeling
	mapCtl       *mapview.Controller // Controller of the single map widget
	metrics      *metrics.Metrics    // Metrics for tracking lookups
	strict       bool                // Reject coordinates that do not parse into a valid point

	latest atomic.Uint64 // Sequence number of the newest submission

	mu         sync.Mutex // Serialises map mutation and resultText
	resultText string
}

// NewApp creates the application controller. The map is drawn at mapview.Home.
func NewApp(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	mapCtl *mapview.Controller,
	metrics *metrics.Metrics,
	strict bool,
) *App {
	mapCtl.Init(mapview.Home)

	return &App{
		log:          log,
		provider:     provider,
		providerName: providerName,
		mapCtl:       mapCtl,
		metrics:      metrics,
		strict:       strict,
	}
}

// Submit resolves query and, unless a newer submission was issued meanwhile,
// recenters the map on the first result and labels it.
func (a *App) Submit(ctx context.Context, query string) Outcome {
	seq := a.latest.Add(1)
	log := a.log.With("seq", seq)

	log.DebugContext(ctx, "Lookup started", "query", query)

	a.metrics.InFlight.Inc()
	startTime := time.Now()
	features, err := a.provider.Resolve(ctx, query)
	a.metrics.RequestSeconds.WithLabelValues(a.providerName).Observe(time.Since(startTime).Seconds())
	a.metrics.InFlight.Dec()

	outcome := a.evaluate(ctx, log, features, err)
	outcome.Seq = seq

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.latest.Load() {
		log.InfoContext(ctx, "Discarding stale lookup result", "latest", a.latest.Load())
		a.metrics.StaleDiscarded.Inc()
		outcome.Stale = true
		return outcome
	}

	a.metrics.Lookups.WithLabelValues(string(outcome.Status)).Inc()
	a.resultText = outcome.Text

	if outcome.Coordinates != nil {
		a.mapCtl.Recenter(*outcome.Coordinates)
		a.mapCtl.PlaceLabel(*outcome.Coordinates, outcome.Feature.Name)
	}

	return outcome
}

// ResultText returns the text of the latest applied lookup.
func (a *App) ResultText() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.resultText
}

// evaluate turns the provider reply into an outcome. Coordinates is set only
// when the map should move.
func (a *App) evaluate(ctx context.Context, log *slog.Logger, features []models.Feature, err error) Outcome {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.InfoContext(ctx, "Lookup cancelled", "error", err)
		} else {
			a.metrics.APIErrors.Inc()
			log.ErrorContext(ctx, "Failed to resolve query", "provider", a.providerName, "error", err)
		}
		return Outcome{Status: StatusFailed, Text: TextFailed}
	}

	if len(features) == 0 {
		log.InfoContext(ctx, "No results for query")
		return Outcome{Status: StatusEmpty, Text: TextNotFound}
	}

	first := features[0]
	coords := coordinates.Parse(first.Geometry.Coordinates)

	if !coords.IsValid() && a.strict {
		log.WarnContext(ctx, "Provider returned unusable coordinates",
			"name", first.Name, "coordinates", first.Geometry.Coordinates)
		return Outcome{Status: StatusInvalid, Text: TextInvalid, Feature: &first}
	}

	log.DebugContext(ctx, "Lookup resolved", "name", first.Name, "lat", coords.Latitude, "lng", coords.Longitude)

	return Outcome{
		Status:      StatusSuccess,
		Text:        FormatResult(first.Name, coords),
		Feature:     &first,
		Coordinates: &coords,
	}
}

// FormatResult renders the success text for a place.
func FormatResult(name string, coords models.Coordinates) string {
	return "場所: " + name +
		", 緯度: " + strconv.FormatFloat(coords.Latitude, 'f', -1, 64) +
		", 経度: " + strconv.FormatFloat(coords.Longitude, 'f', -1, 64)
}
