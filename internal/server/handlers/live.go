package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
)

// HandleLiveWeather handles GET /api/v1/live/weather/{city}.
func (h *Handlers) HandleLiveWeather(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "city")
	city, ok := parseCity(raw)
	if !ok {
		response.BadRequest(w, "Unknown city", "city must be Kyoto or Osaka, got "+strings.TrimSpace(raw))
		return
	}
	response.OK(w, h.tm.Weather(r.Context(), city))
}

// HandleLiveRate handles GET /api/v1/live/rate.
func (h *Handlers) HandleLiveRate(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.tm.Rate(r.Context()))
}

// HandleLiveTips handles GET /api/v1/live/tips/{day}.
func (h *Handlers) HandleLiveTips(w http.ResponseWriter, r *http.Request) {
	dayID, ok := dayParam(w, r)
	if !ok {
		return
	}
	tips, err := h.tm.Tips(r.Context(), dayID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, tips)
}
