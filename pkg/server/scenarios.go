package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/retroplan/retroplan/pkg/log"
	"github.com/retroplan/retroplan/pkg/storage"
	"github.com/retroplan/retroplan/pkg/types"
)

// handleSaveScenario creates a scenario, or updates one when the body
// carries an existing ID.
func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	siteID := s.getSiteID(r)

	var scenario types.Scenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateEstimateRequest(scenario.Request); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
		scenario.CreatedAt = now
	} else {
		existing, err := s.storage.GetScenario(ctx, siteID, scenario.ID)
		if errors.Is(err, storage.ErrScenarioNotFound) {
			writeJSONError(w, "scenario not found", http.StatusNotFound)
			return
		} else if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to fetch scenario", slog.Any("error", err))
			writeJSONError(w, "failed to fetch scenario", http.StatusInternalServerError)
			return
		}
		scenario.CreatedAt = existing.CreatedAt
	}
	scenario.UpdatedAt = now

	if err := s.storage.SaveScenario(ctx, siteID, scenario); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save scenario", slog.Any("error", err))
		writeJSONError(w, "failed to save scenario", http.StatusInternalServerError)
		return
	}
	writeJSON(w, scenario)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenarios, err := s.storage.ListScenarios(ctx, s.getSiteID(r))
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list scenarios", slog.Any("error", err))
		writeJSONError(w, "failed to list scenarios", http.StatusInternalServerError)
		return
	}
	if scenarios == nil {
		scenarios = []types.Scenario{}
	}
	writeJSON(w, scenarios)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenario, err := s.storage.GetScenario(ctx, s.getSiteID(r), r.PathValue("id"))
	if errors.Is(err, storage.ErrScenarioNotFound) {
		writeJSONError(w, "scenario not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to fetch scenario", slog.Any("error", err))
		writeJSONError(w, "failed to fetch scenario", http.StatusInternalServerError)
		return
	}
	writeJSON(w, scenario)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.storage.DeleteScenario(ctx, s.getSiteID(r), r.PathValue("id")); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to delete scenario", slog.Any("error", err))
		writeJSONError(w, "failed to delete scenario", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
