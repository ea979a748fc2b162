// Package health exposes the liveness endpoint for load balancers and
// orchestrators.
package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mohandz/mohandz-admin/internal/apiclient"
	"github.com/mohandz/mohandz-admin/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	API *apiclient.Client
	Log *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(api *apiclient.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health. The dashboard itself is always "ok" if it can
// answer; the backend field reports upstream reachability. Backend outage
// does not fail the check, because the dashboard still serves pages.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "health probe")
	defer cancel()

	resp := healthResponse{Status: "ok", Backend: "reachable"}
	if err := h.API.Ping(ctx); err != nil {
		h.Log.Warn("backend unreachable", zap.Error(err))
		resp.Backend = "unreachable"
		resp.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
