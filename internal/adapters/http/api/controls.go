// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	service "github.com/podiumlab/podium/internal/app"
)

// DomainHandler switches the ranking column.
type DomainHandler struct {
	deps Dependencies
}

// NewDomainHandler creates a new domain handler.
func NewDomainHandler(deps Dependencies) *DomainHandler {
	return &DomainHandler{deps: deps}
}

// HandleDomain handles POST /api/domain?name=Overall requests.
func (h *DomainHandler) HandleDomain(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_domain"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	v, err := h.deps.SetDomain(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDomain) {
			writeError(w, http.StatusBadRequest, "unknown_domain", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// SearchHandler applies, queues, or clears the search term.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles POST /api/search requests.
//
//	?q=term            queue a debounced search (keystroke)
//	?q=term&now=1      apply immediately (Enter)
//	?clear=1           drop pending search and clear the term (Escape/clear)
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	if q.Get("clear") == "1" {
		writeJSON(w, http.StatusOK, h.deps.ClearSearch(r.Context()))
		return
	}
	term := q.Get("q")
	if q.Get("now") == "1" {
		writeJSON(w, http.StatusOK, h.deps.ApplySearch(r.Context(), term))
		return
	}
	h.deps.QueueSearch(term)
	writeJSON(w, http.StatusAccepted, h.deps.View(r.Context()))
}

// OracleHandler flips the data source mode.
type OracleHandler struct {
	deps Dependencies
}

// NewOracleHandler creates a new oracle handler.
func NewOracleHandler(deps Dependencies) *OracleHandler {
	return &OracleHandler{deps: deps}
}

// HandleOracle handles POST /api/oracle?on=true|false requests. Flipping
// the mode triggers a full reload of the alternate resource.
func (h *OracleHandler) HandleOracle(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_oracle"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	on, err := strconv.ParseBool(r.URL.Query().Get("on"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	v, err := h.deps.SetOracle(r.Context(), on)
	if err != nil {
		if errors.Is(err, service.ErrOracleUnavailable) {
			writeError(w, http.StatusConflict, "oracle_unavailable", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ReloadHandler forces an immediate dataset reload.
type ReloadHandler struct {
	deps Dependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /api/reload requests.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.Reload(r.Context())
	writeJSON(w, http.StatusOK, h.deps.View(r.Context()))
}
