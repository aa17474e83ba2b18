// Package events fans trip events out to every realtime transport.
//
// The tripmap client's hooks and the relay handler publish typed trip
// events into a Broker. The broker numbers them, keeps a short history
// for clients that reconnect, and hands each one to its subscribers: the
// WebSocket hub, the SSE broadcaster and optionally Kafka.
package events

import (
	"strconv"
	"time"

	"github.com/agentstation/tripmap/internal/server/sse"
	ws "github.com/agentstation/tripmap/internal/server/websocket"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// EventType names a trip event.
type EventType string

// Event types.
const (
	// CollectionChanged follows every collection mutation.
	CollectionChanged EventType = "collection.changed"
	// TripReloaded follows an import, pull, apply or manual reload.
	TripReloaded EventType = "trip.reloaded"
	// SyncStatusChanged follows each push/pull status transition.
	SyncStatusChanged EventType = "sync.status"
	// RelayUpdated follows a push into this server's relay slot.
	RelayUpdated EventType = "relay.updated"
	// ClientConnected is sent when a realtime client connects.
	ClientConnected EventType = "client.connected"
)

// Event is one trip event. Only the fields belonging to its Type are set.
type Event struct {
	// Seq is assigned by the broker and increases by one per event.
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// collection.changed
	Collection string `json:"collection,omitempty"`
	Action     string `json:"action,omitempty"`
	ID         string `json:"id,omitempty"`

	// trip.reloaded
	Source string   `json:"source,omitempty"`
	Keys   []string `json:"keys,omitempty"`

	// sync.status
	From  syncer.Status `json:"from,omitempty"`
	To    syncer.Status `json:"to,omitempty"`
	Error string        `json:"error,omitempty"`

	// relay.updated
	PayloadTimestamp int64           `json:"payload_timestamp,omitempty"`
	Preview          *syncer.Preview `json:"preview,omitempty"`

	// client.connected
	ClientID string `json:"client_id,omitempty"`
}

// Changed describes a collection mutation.
func Changed(ce collections.ChangeEvent) Event {
	return Event{
		Type:       CollectionChanged,
		Timestamp:  ce.At,
		Collection: ce.Collection,
		Action:     ce.Action,
		ID:         ce.ID,
	}
}

// Reloaded describes a reload from source that touched keys.
func Reloaded(source string, keys []string, at time.Time) Event {
	return Event{
		Type:      TripReloaded,
		Timestamp: at,
		Source:    source,
		Keys:      append([]string(nil), keys...),
	}
}

// SyncStatus describes a sync status transition. cause is only recorded
// when the machine moved to the error state.
func SyncStatus(from, to syncer.Status, cause error) Event {
	e := Event{
		Type:      SyncStatusChanged,
		Timestamp: time.Now(),
		From:      from,
		To:        to,
	}
	if to == syncer.StatusError && cause != nil {
		e.Error = cause.Error()
	}
	return e
}

// Relayed describes a payload stored in the relay slot.
func Relayed(p *syncer.Payload) Event {
	pv := p.Preview()
	return Event{
		Type:             RelayUpdated,
		Timestamp:        time.Now(),
		PayloadTimestamp: p.Timestamp,
		Preview:          &pv,
	}
}

// Connected describes a realtime client joining.
func Connected(clientID string) Event {
	return Event{Type: ClientConnected, Timestamp: time.Now(), ClientID: clientID}
}

// Key groups related events. Changes to one collection share a key so a
// partitioned consumer sees them in order.
func (e Event) Key() string {
	if e.Type == CollectionChanged && e.Collection != "" {
		return e.Collection
	}
	return string(e.Type)
}

// WantsPull reports whether a device that did not cause the event should
// pull from the relay to catch up.
func (e Event) WantsPull() bool {
	return e.Type == RelayUpdated
}

// Message frames the event for WebSocket clients.
func (e Event) Message() ws.Message {
	return ws.Message{Type: string(e.Type), Timestamp: e.Timestamp, Data: e}
}

// SSE frames the event for SSE clients. The id is Seq, which a reconnecting
// client sends back as Last-Event-ID.
func (e Event) SSE() sse.Event {
	s := sse.Event{Event: string(e.Type), Data: e}
	if e.Seq > 0 {
		s.ID = strconv.FormatUint(e.Seq, 10)
	}
	return s
}
