package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/collections"
)

// HandleListDays handles GET /api/v1/days.
func (h *Handlers) HandleListDays(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.tm.Itinerary().Days())
}

// HandleGetDay handles GET /api/v1/days/{day}.
func (h *Handlers) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	dayID, ok := dayParam(w, r)
	if !ok {
		return
	}
	day, err := h.tm.Itinerary().Day(dayID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, day)
}

// HandleAddItem handles POST /api/v1/days/{day}/items.
func (h *Handlers) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	dayID, ok := dayParam(w, r)
	if !ok {
		return
	}
	var in collections.ItemInput
	if !h.decode(w, r, &in) {
		return
	}
	item, err := h.tm.Itinerary().AddItem(r.Context(), dayID, in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, item)
}

// HandleUpdateItem handles PUT /api/v1/days/{day}/items/{item}.
func (h *Handlers) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	dayID, ok := dayParam(w, r)
	if !ok {
		return
	}
	var in collections.ItemInput
	if !h.decode(w, r, &in) {
		return
	}
	item, err := h.tm.Itinerary().UpdateItem(r.Context(), dayID, chi.URLParam(r, "item"), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, item)
}

// HandleDeleteItem handles DELETE /api/v1/days/{day}/items/{item}.
func (h *Handlers) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	dayID, ok := dayParam(w, r)
	if !ok {
		return
	}
	if err := h.tm.Itinerary().DeleteItem(r.Context(), dayID, chi.URLParam(r, "item")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

type moveRequest struct {
	ToDay int `json:"toDay"`
}

// HandleMoveItem handles POST /api/v1/days/{day}/items/{item}/move.
func (h *Handlers) HandleMoveItem(w http.ResponseWriter, r *http.Request) {
	dayID, ok := dayParam(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.tm.Itinerary().MoveItem(r.Context(), dayID, req.ToDay, chi.URLParam(r, "item")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	day, err := h.tm.Itinerary().Day(req.ToDay)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, day)
}
