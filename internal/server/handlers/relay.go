package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/tripmap/internal/server/events"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// The relay speaks the spreadsheet endpoint's protocol rather than the
// API envelope, so existing devices can point their sync URL at it.

var relaySchema = store.NewSchema(constants.KeyRelay)

type relayRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type relayReply struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleRelayGet handles GET /api/v1/relay?action=get and answers the
// last pushed payload, or {} when nothing was pushed yet.
func (h *Handlers) HandleRelayGet(w http.ResponseWriter, r *http.Request) {
	if action := r.URL.Query().Get("action"); action != "" && action != syncer.ActionGet {
		writeRaw(w, http.StatusBadRequest, relayReply{Status: "error", Error: "unknown action " + action})
		return
	}

	payload, ok := store.Get[json.RawMessage](r.Context(), h.relay, relaySchema)
	if !ok {
		payload = json.RawMessage(`{}`)
	}
	writeRaw(w, http.StatusOK, payload)
}

// HandleRelayPost handles POST /api/v1/relay with {action:"update", payload}.
func (h *Handlers) HandleRelayPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var req relayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRaw(w, http.StatusBadRequest, relayReply{Status: "error", Error: "invalid JSON body"})
		return
	}
	if req.Action != syncer.ActionUpdate {
		writeRaw(w, http.StatusBadRequest, relayReply{Status: "error", Error: "unknown action " + req.Action})
		return
	}

	p, err := syncer.DecodeJSON(req.Payload)
	if err != nil {
		writeRaw(w, http.StatusBadRequest, relayReply{Status: "error", Error: err.Error()})
		return
	}

	if err := store.PutRaw(r.Context(), h.relay, relaySchema, req.Payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store relay payload")
		writeRaw(w, http.StatusInternalServerError, relayReply{Status: "error", Error: "failed to store payload"})
		return
	}

	h.broker.Publish(events.Relayed(p))
	h.logger.Info().Int64("timestamp", p.Timestamp).Msg("Relay payload updated")

	writeRaw(w, http.StatusOK, relayReply{Status: "success", Timestamp: p.Timestamp})
}

func writeRaw(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
