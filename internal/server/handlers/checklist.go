package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
)

// HandleGetChecklist handles GET /api/v1/checklist.
func (h *Handlers) HandleGetChecklist(w http.ResponseWriter, _ *http.Request) {
	cl := h.tm.Checklist()
	response.OK(w, map[string]any{
		"categories": cl.Categories(),
		"checked":    cl.Checked(),
		"progress":   cl.Progress(),
	})
}

type toggleRequest struct {
	Name    string `json:"name"`
	Checked *bool  `json:"checked,omitempty"`
}

// HandleToggleChecklistItem handles POST /api/v1/checklist/toggle. With
// "checked" set the item is forced to that state, otherwise it flips.
func (h *Handlers) HandleToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !h.decode(w, r, &req) {
		return
	}

	cl := h.tm.Checklist()
	var (
		checked bool
		err     error
	)
	if req.Checked != nil {
		checked = *req.Checked
		err = cl.SetChecked(r.Context(), req.Name, checked)
	} else {
		checked, err = cl.Toggle(r.Context(), req.Name)
	}
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"name": req.Name, "checked": checked})
}

// HandleResetChecklist handles POST /api/v1/checklist/reset.
func (h *Handlers) HandleResetChecklist(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Checklist().ResetChecks(r.Context()); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

type categoryRequest struct {
	Title string `json:"title"`
}

// HandleAddChecklistCategory handles POST /api/v1/checklist/categories.
func (h *Handlers) HandleAddChecklistCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	cat, err := h.tm.Checklist().AddCategory(r.Context(), req.Title)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, cat)
}

// HandleRenameChecklistCategory handles PATCH /api/v1/checklist/categories/{id}.
func (h *Handlers) HandleRenameChecklistCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.tm.Checklist().RenameCategory(r.Context(), id, req.Title); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]string{"id": id, "title": req.Title})
}

// HandleDeleteChecklistCategory handles DELETE /api/v1/checklist/categories/{id}.
func (h *Handlers) HandleDeleteChecklistCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Checklist().DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

type checklistItemRequest struct {
	Name string `json:"name"`
}

// HandleAddChecklistItem handles POST /api/v1/checklist/categories/{id}/items.
func (h *Handlers) HandleAddChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req checklistItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.tm.Checklist().AddItem(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, map[string]string{"categoryId": chi.URLParam(r, "id"), "name": req.Name})
}

// HandleRemoveChecklistItem handles
// DELETE /api/v1/checklist/categories/{id}/items/{name}.
func (h *Handlers) HandleRemoveChecklistItem(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Checklist().RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}
