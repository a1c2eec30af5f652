package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/stations"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, loaded := s.source.Info(); !loaded {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "scenario not loaded yet")
		return
	}

	checks := make(map[string]string)
	ready := true
	for name, err := range s.registry.HealthCheckAll(r.Context()) {
		if err != nil {
			slog.Warn("readiness check failed", "service", name, "error", err)
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "backing service unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"services": checks,
	})
}

// Scenario handlers

type statusResponse struct {
	ScenarioID string            `json:"scenario_id"`
	Name       string            `json:"name"`
	Ship       models.Ship       `json:"ship"`
	Systems    int               `json:"systems"`
	Load       models.LoadRecord `json:"load"`
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.source.Load(r.Context()))
}

func (s *Server) handleScenarioStatus(w http.ResponseWriter, r *http.Request) {
	sc := s.source.Load(r.Context())
	rec, _ := s.source.Info()

	respondJSON(w, http.StatusOK, statusResponse{
		ScenarioID: sc.ID,
		Name:       sc.Name,
		Ship:       sc.Ship,
		Systems:    len(sc.Systems),
		Load:       rec,
	})
}

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	sc := s.source.Load(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"systems": sc.Systems,
		"total":   len(sc.Systems),
	})
}

func (s *Server) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sys := s.source.Load(r.Context()).FindSystem(id)
	if sys == nil {
		respondError(w, http.StatusNotFound, "not_found", "system not found")
		return
	}

	respondJSON(w, http.StatusOK, sys)
}

func (s *Server) handleGetDamageNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sc := s.source.Load(r.Context())
	node := sc.DamageControl.FindDamageNode(id)
	if node == nil {
		respondError(w, http.StatusNotFound, "not_found", "damage node not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"node":  node,
		"depth": node.Depth(),
	})
}

// Station handlers

func (s *Server) handleListStations(w http.ResponseWriter, r *http.Request) {
	list := s.renderer.Stations()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stations": list,
		"total":    len(list),
	})
}

func (s *Server) handleGetStation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	panel, err := s.renderer.Render(id, s.source.Load(r.Context()))
	if err != nil {
		if errors.Is(err, stations.ErrStationNotFound) {
			respondError(w, http.StatusNotFound, "station_not_found", "station not found")
			return
		}
		slog.Error("failed to render station", "error", err, "station", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to render station")
		return
	}

	respondJSON(w, http.StatusOK, panel)
}

// History handlers

func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "history_disabled", "load history requires a database")
		return
	}

	filters := models.LoadFilters{
		Source: models.LoadSource(r.URL.Query().Get("source")),
		Limit:  50, // default
		Offset: 0,
	}

	switch filters.Source {
	case "", models.SourceLive, models.SourceFallback:
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "source must be live or fallback")
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	loads, err := s.history.ListLoads(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list loads", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list loads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"loads": loads,
		"total": len(loads),
	})
}
