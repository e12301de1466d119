// Package web serves the search page and its JSON endpoints.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/compass/internal/mapview"
	"github.com/UnknownOlympus/compass/internal/metrics"
	"github.com/UnknownOlympus/compass/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxQueryBytes bounds the search form body.
const maxQueryBytes = 4 << 10

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Searcher runs one search submission.
type Searcher interface {
	Submit(ctx context.Context, query string) service.Outcome
	ResultText() string
}

// ViewSource exposes the current map state.
type ViewSource interface {
	View() mapview.View
}

// searchResponse is the reply of POST /api/search.
type searchResponse struct {
	service.Outcome
	View mapview.View `json:"view"`
}

type handler struct {
	searcher Searcher
	views    ViewSource
	log      *slog.Logger
}

// NewRouter builds the HTTP handler of the search UI.
func NewRouter(searcher Searcher, views ViewSource, log *slog.Logger, appMetrics *metrics.Metrics) http.Handler {
	h := &handler{searcher: searcher, views: views, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(appMetrics.Middleware())

	r.Get("/", h.index)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", h.search)
		r.Get("/map", h.mapView)
	})

	return r
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	view, err := json.Marshal(h.views.View())
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to encode map view", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = indexTemplate.Execute(w, struct {
		ResultText string
		View       template.JS
	}{
		ResultText: h.searcher.ResultText(),
		View:       template.JS(view), //nolint:gosec // produced by encoding/json
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to render page", "error", err)
	}
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBytes)
	if err := r.ParseForm(); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}

	outcome := h.searcher.Submit(r.Context(), r.PostForm.Get("query"))

	h.log.InfoContext(r.Context(), "Search handled",
		"request_id", middleware.GetReqID(r.Context()),
		"seq", outcome.Seq,
		"status", outcome.Status,
		"stale", outcome.Stale)

	h.writeJSON(w, r, http.StatusOK, searchResponse{Outcome: outcome, View: h.views.View()})
}

func (h *handler) mapView(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.views.View())
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}
