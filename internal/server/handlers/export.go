package handlers

import (
	"net/http"

	"github.com/agentstation/tripmap/internal/export"
	"github.com/agentstation/tripmap/internal/server/response"
)

// HandleExportMarkdown handles GET /api/v1/export/itinerary.md.
func (h *Handlers) HandleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	doc, err := export.ItineraryString(title, h.tm.Itinerary().Days())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.md"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
