// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/podiumlab/podium/internal/render"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// View returns the current rendered leaderboard view.
	View(ctx context.Context) render.View

	// SetDomain switches the ranking column; the search term persists.
	SetDomain(ctx context.Context, label string) (render.View, error)

	// ApplySearch sets the search term immediately and re-renders.
	ApplySearch(ctx context.Context, term string) render.View

	// QueueSearch schedules a debounced search.
	QueueSearch(term string)

	// ClearSearch cancels any pending search and clears the term.
	ClearSearch(ctx context.Context) render.View

	// SetOracle flips the data source mode and reloads.
	SetOracle(ctx context.Context, on bool) (render.View, error)

	// Reload forces an immediate dataset reload.
	Reload(ctx context.Context)
}

// Server wires HTTP routes for the leaderboard API.
type Server struct {
	viewHandler   *ViewHandler
	domainHandler *DomainHandler
	searchHandler *SearchHandler
	oracleHandler *OracleHandler
	reloadHandler *ReloadHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		viewHandler:   NewViewHandler(deps),
		domainHandler: NewDomainHandler(deps),
		searchHandler: NewSearchHandler(deps),
		oracleHandler: NewOracleHandler(deps),
		reloadHandler: NewReloadHandler(deps),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/view", MetricsMiddleware(s.viewHandler.HandleView, "view"))
	mux.HandleFunc("/api/domain", MetricsMiddleware(s.domainHandler.HandleDomain, "domain"))
	mux.HandleFunc("/api/search", MetricsMiddleware(s.searchHandler.HandleSearch, "search"))
	mux.HandleFunc("/api/oracle", MetricsMiddleware(s.oracleHandler.HandleOracle, "oracle"))
	mux.HandleFunc("/api/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
