package handlers

import (
	"net/http"

	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/trip"
)

// HandleAccommodations handles GET /api/v1/accommodations.
func (h *Handlers) HandleAccommodations(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, trip.Accommodations())
}

// HandleTrains handles GET /api/v1/trains.
func (h *Handlers) HandleTrains(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"haruka": trip.HarukaSchedule(),
		"rapit":  trip.RapitSchedule(),
	})
}
