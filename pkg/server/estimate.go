package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/log"
	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/retrofit"
	"github.com/retroplan/retroplan/pkg/types"
)

// handleEstimate runs the standard three-way upgrade comparison for the
// posted house.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateEstimateRequest(req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := retrofit.Estimate(ctx, req, s.irradiance)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to estimate", slog.Any("error", err))
		writeJSONError(w, "failed to estimate", http.StatusBadGateway)
		return
	}
	writeJSON(w, resp)
}

func validateEstimateRequest(req types.EstimateRequest) error {
	if _, ok := params.HousePresets[req.Baseline.HouseType]; !ok {
		return fmt.Errorf("unknown house type: %s", req.Baseline.HouseType)
	}
	if _, ok := params.HeatingPresets[req.Baseline.HeatingSystem]; !ok {
		return fmt.Errorf("unknown heating system: %s", req.Baseline.HeatingSystem)
	}
	if req.UpgradeHeating != "" {
		if _, ok := params.HeatingPresets[req.UpgradeHeating]; !ok {
			return fmt.Errorf("unknown heating system: %s", req.UpgradeHeating)
		}
	}
	for _, t := range req.Baseline.Tariffs {
		if _, err := fuel.ByName(t.Fuel); err != nil {
			return err
		}
	}
	return nil
}
