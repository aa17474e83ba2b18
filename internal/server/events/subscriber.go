package events

import (
	"github.com/agentstation/tripmap/internal/server/sse"
	ws "github.com/agentstation/tripmap/internal/server/websocket"
)

// Subscriber consumes the event stream on behalf of one transport.
type Subscriber interface {
	// Send delivers an event. It must not block for long; the broker calls
	// it from its own goroutine per event.
	Send(Event) error
	// Close releases the transport.
	Close() error
}

// Realtime delivers events to the browser-facing transports. The hub and
// the broadcaster run on the server's context, so Close leaves them alone.
type Realtime struct {
	hub *ws.Hub
	sse *sse.Broadcaster
}

// NewRealtime creates a subscriber for hub and broadcaster. Either may be nil.
func NewRealtime(hub *ws.Hub, broadcaster *sse.Broadcaster) *Realtime {
	return &Realtime{hub: hub, sse: broadcaster}
}

// Send frames e for each transport.
func (r *Realtime) Send(e Event) error {
	if r.hub != nil {
		r.hub.Broadcast(e.Message())
	}
	if r.sse != nil {
		r.sse.Broadcast(e.SSE())
	}
	return nil
}

// Close is a no-op.
func (r *Realtime) Close() error { return nil }
