package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/tripmap/internal/server/response"
)

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "tripmap-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready.
// The server is ready once the trip has loaded its itinerary.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if len(h.tm.Itinerary().Days()) == 0 {
		response.ServiceUnavailable(w, "Itinerary not loaded")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"uptime":            time.Since(h.startTime).Round(time.Second).String(),
		"sync_status":       h.tm.SyncStatus(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
