package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agentstation/tripmap/internal/export"
	"github.com/agentstation/tripmap/internal/server/response"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// SyncStatusResponse is the body of GET /api/v1/sync/status.
type SyncStatusResponse struct {
	Status  syncer.Status `json:"status"`
	Error   string        `json:"error,omitempty"`
	SyncURL string        `json:"syncUrl"`
}

// HandleSyncStatus handles GET /api/v1/sync/status.
func (h *Handlers) HandleSyncStatus(w http.ResponseWriter, _ *http.Request) {
	resp := SyncStatusResponse{
		Status:  h.tm.SyncStatus(),
		SyncURL: h.tm.SyncURL(),
	}
	if err := h.tm.SyncError(); err != nil {
		resp.Error = err.Error()
	}
	response.OK(w, resp)
}

// HandleExportToken handles GET /api/v1/sync/token.
func (h *Handlers) HandleExportToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.tm.ExportToken(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"token":   token,
		"preview": h.tm.Gather(r.Context()).Preview(),
	})
}

// HandleExportTokenQR handles GET /api/v1/sync/token.png. The optional
// size query parameter sets the edge length in pixels.
func (h *Handlers) HandleExportTokenQR(w http.ResponseWriter, r *http.Request) {
	size := export.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > 2048 {
			response.BadRequest(w, "Invalid size", "size must be an integer between 64 and 2048")
			return
		}
		size = n
	}

	token, err := h.tm.ExportToken(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	png, err := export.TokenQR(token, size)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

type importRequest struct {
	Token  string `json:"token"`
	DryRun bool   `json:"dryRun"`
}

// HandleImportToken handles POST /api/v1/sync/import. The request itself
// is the confirmation; with dryRun only the preview is returned.
func (h *Handlers) HandleImportToken(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.DryRun {
		p, err := syncer.Decode(req.Token)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		response.OK(w, map[string]any{
			"applied": false,
			"preview": p.Preview(),
		})
		return
	}

	var preview syncer.Preview
	written, err := h.tm.ImportToken(r.Context(), req.Token, capture(&preview, true))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"applied": true,
		"preview": preview,
		"written": written,
	})
}

// HandlePush handles POST /api/v1/sync/push.
func (h *Handlers) HandlePush(w http.ResponseWriter, r *http.Request) {
	ack, err := h.tm.Push(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, ack)
}

type pullRequest struct {
	DryRun bool `json:"dryRun"`
}

// HandlePull handles POST /api/v1/sync/pull. With dryRun the remote
// payload is previewed and declined.
func (h *Handlers) HandlePull(w http.ResponseWriter, r *http.Request) {
	var req pullRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	var preview syncer.Preview
	outcome, err := h.tm.Pull(r.Context(), capture(&preview, !req.DryRun))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, outcome)
}

type syncURLRequest struct {
	URL string `json:"url"`
}

// HandleGetSyncURL handles GET /api/v1/sync/url.
func (h *Handlers) HandleGetSyncURL(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, syncURLRequest{URL: h.tm.SyncURL()})
}

// HandleSetSyncURL handles PUT /api/v1/sync/url. An empty URL restores the
// default endpoint.
func (h *Handlers) HandleSetSyncURL(w http.ResponseWriter, r *http.Request) {
	var req syncURLRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.tm.SetSyncURL(r.Context(), req.URL); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, syncURLRequest{URL: h.tm.SyncURL()})
}

// capture records the preview and answers with accept.
func capture(dst *syncer.Preview, accept bool) syncer.Confirm {
	return func(_ context.Context, p syncer.Preview) (bool, error) {
		*dst = p
		return accept, nil
	}
}
