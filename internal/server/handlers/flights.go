package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/collections"
)

// HandleListFlights handles GET /api/v1/flights.
func (h *Handlers) HandleListFlights(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.tm.Flights().List())
}

// HandleUpdateFlight handles PATCH /api/v1/flights/{id}.
func (h *Handlers) HandleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	var u collections.FlightUpdate
	if !h.decode(w, r, &u) {
		return
	}
	f, err := h.tm.Flights().Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, f)
}
