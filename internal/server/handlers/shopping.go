package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/collections"
)

// HandleListShopping handles GET /api/v1/shopping/items.
func (h *Handlers) HandleListShopping(w http.ResponseWriter, _ *http.Request) {
	s := h.tm.Shopping()
	response.OK(w, map[string]any{
		"items":    s.Items(),
		"progress": s.Progress(),
	})
}

// HandleAddShopping handles POST /api/v1/shopping/items.
func (h *Handlers) HandleAddShopping(w http.ResponseWriter, r *http.Request) {
	var in collections.ShoppingInput
	if !h.decode(w, r, &in) {
		return
	}
	item, err := h.tm.Shopping().AddItem(r.Context(), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, item)
}

// HandleUpdateShopping handles PUT /api/v1/shopping/items/{id}.
func (h *Handlers) HandleUpdateShopping(w http.ResponseWriter, r *http.Request) {
	var in collections.ShoppingInput
	if !h.decode(w, r, &in) {
		return
	}
	item, err := h.tm.Shopping().UpdateItem(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, item)
}

// HandleDeleteShopping handles DELETE /api/v1/shopping/items/{id}.
func (h *Handlers) HandleDeleteShopping(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Shopping().DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleToggleShopping handles POST /api/v1/shopping/items/{id}/toggle.
func (h *Handlers) HandleToggleShopping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bought, err := h.tm.Shopping().ToggleBought(r.Context(), id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"id": id, "isBought": bought})
}

// HandleListShoppingTypes handles GET /api/v1/shopping/types.
func (h *Handlers) HandleListShoppingTypes(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.tm.Shopping().Types())
}

type shoppingTypeRequest struct {
	Name string `json:"name"`
}

// HandleAddShoppingType handles POST /api/v1/shopping/types.
func (h *Handlers) HandleAddShoppingType(w http.ResponseWriter, r *http.Request) {
	var req shoppingTypeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.tm.Shopping().AddType(r.Context(), req.Name); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, h.tm.Shopping().Types())
}

// HandleDeleteShoppingType handles DELETE /api/v1/shopping/types/{name}.
// Items of the removed type move to the fallback type.
func (h *Handlers) HandleDeleteShoppingType(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Shopping().DeleteType(r.Context(), chi.URLParam(r, "name")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}
