package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/collections"
)

// HandleListExpenses handles GET /api/v1/expenses.
func (h *Handlers) HandleListExpenses(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.tm.Expenses().List())
}

// HandleAddExpense handles POST /api/v1/expenses. The TWD amount is
// converted at the live rate, or the default rate when it is unavailable.
func (h *Handlers) HandleAddExpense(w http.ResponseWriter, r *http.Request) {
	var in collections.ExpenseInput
	if !h.decode(w, r, &in) {
		return
	}
	e, rate, err := h.tm.AddExpenseAtLiveRate(r.Context(), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, map[string]any{
		"expense": e,
		"rate":    rate,
	})
}

// HandleUpdateExpense handles PATCH /api/v1/expenses/{id}.
func (h *Handlers) HandleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var u collections.ExpenseUpdate
	if !h.decode(w, r, &u) {
		return
	}
	e, err := h.tm.Expenses().Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, e)
}

// HandleDeleteExpense handles DELETE /api/v1/expenses/{id}.
func (h *Handlers) HandleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.tm.Expenses().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.NoContent(w)
}

// HandleExpenseSummary handles GET /api/v1/expenses/summary.
func (h *Handlers) HandleExpenseSummary(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.tm.Expenses().Summary())
}
