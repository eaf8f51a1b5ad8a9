package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/qbvalue/internal/ingest/nflverse"
	"github.com/fortuna/qbvalue/internal/pipeline"
)

// ModelService is the surface the handlers consume.
// *service.ModelService implements it.
type ModelService interface {
	Refresh(ctx context.Context) error
	ModelRows(season int, team string) ([]pipeline.ModelRow, bool)
	TeamRows(season int, team string) ([]pipeline.TeamModelRow, bool)
	Games(season int) ([]nflverse.GameRecord, bool)
	LastUpdated() (time.Time, bool)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc ModelService
}

// NewHandler creates a new handler
func NewHandler(svc ModelService) *Handler {
	return &Handler{svc: svc}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "healthy",
		"service": "qbvalue",
	}
	if at, ok := h.svc.LastUpdated(); ok {
		status["last_refresh"] = at.Format(time.RFC3339)
	} else {
		status["last_refresh"] = nil
	}
	respondJSON(w, http.StatusOK, status)
}

// GetModel returns the player-level value table, optionally filtered by
// ?season= and ?team=.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	season, ok := querySeason(w, r)
	if !ok {
		return
	}

	rows, loaded := h.svc.ModelRows(season, r.URL.Query().Get("team"))
	if !loaded {
		respondError(w, http.StatusServiceUnavailable, "Dataset not loaded yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"count": len(rows),
	})
}

// GetTeamModel returns the team-level value table, optionally filtered by
// ?season= and ?team=.
func (h *Handler) GetTeamModel(w http.ResponseWriter, r *http.Request) {
	season, ok := querySeason(w, r)
	if !ok {
		return
	}

	rows, loaded := h.svc.TeamRows(season, r.URL.Query().Get("team"))
	if !loaded {
		respondError(w, http.StatusServiceUnavailable, "Dataset not loaded yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"count": len(rows),
	})
}

// GetGames returns the raw game table, optionally filtered by ?season=.
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	season, ok := querySeason(w, r)
	if !ok {
		return
	}

	games, loaded := h.svc.Games(season)
	if !loaded {
		respondError(w, http.StatusServiceUnavailable, "Dataset not loaded yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// Refresh re-runs the pipeline. A failed run leaves the served dataset
// exactly as it was.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Refresh(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "Refresh failed, previous dataset retained", err)
		return
	}

	response := map[string]interface{}{
		"message": "Dataset refreshed",
	}
	if at, ok := h.svc.LastUpdated(); ok {
		response["fetched_at"] = at.Format(time.RFC3339)
	}
	respondJSON(w, http.StatusOK, response)
}

// querySeason parses the optional ?season= parameter; zero means no filter.
func querySeason(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("season")
	if s == "" {
		return 0, true
	}
	season, err := strconv.Atoi(s)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return 0, false
	}
	return season, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
