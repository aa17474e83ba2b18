package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/agentstation/tripmap/internal/server/events"
	"github.com/agentstation/tripmap/internal/server/sse"
	ws "github.com/agentstation/tripmap/internal/server/websocket"
)

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.wsHub, conn)
	h.wsHub.Register(client)
	h.broker.Publish(events.Connected(client.ID()))

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles Server-Sent Events at /api/v1/updates/stream. A client
// reconnecting with Last-Event-ID first receives the events it missed.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	last, err := strconv.ParseUint(r.Header.Get("Last-Event-ID"), 10, 64)
	if err != nil {
		h.sseBroadcaster.ServeHTTP(w, r)
		return
	}

	h.sseBroadcaster.Stream(w, r, func() []sse.Event {
		missed := h.broker.Since(last)
		out := make([]sse.Event, 0, len(missed))
		for _, e := range missed {
			out = append(out, e.SSE())
		}
		h.logger.Debug().
			Uint64("last_event_id", last).
			Int("replayed", len(out)).
			Msg("Replaying trip events to SSE client")
		return out
	})
}
