package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/collections"
)

// HandleListCoupons handles GET /api/v1/coupons.
func (h *Handlers) HandleListCoupons(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.tm.Coupons().List())
}

// HandleAddCoupon handles POST /api/v1/coupons.
func (h *Handlers) HandleAddCoupon(w http.ResponseWriter, r *http.Request) {
	var in collections.CouponInput
	if !h.decode(w, r, &in) {
		return
	}
	c, err := h.tm.Coupons().Add(r.Context(), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, c)
}

// HandleUpdateCoupon handles PUT /api/v1/coupons/{id}.
func (h *Handlers) HandleUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	var in collections.CouponInput
	if !h.decode(w, r, &in) {
		return
	}
	c, err := h.tm.Coupons().Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, c)
}

// HandleDeleteCoupon handles DELETE /api/v1/coupons/{id}.
func (h *Handlers) HandleDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Coupons().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}
