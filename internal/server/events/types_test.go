package events

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/internal/server/sse"
	ws "github.com/agentstation/tripmap/internal/server/websocket"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/syncer"
	"github.com/agentstation/tripmap/pkg/trip"
)

// TestEventConstructors tests that each trip hook maps onto its event fields.
func TestEventConstructors(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	changed := Changed(collections.ChangeEvent{Collection: "expenses", Action: "add", ID: "e1", At: at})
	if changed.Type != CollectionChanged || changed.Collection != "expenses" || changed.Action != "add" || changed.ID != "e1" {
		t.Errorf("unexpected change event %+v", changed)
	}
	if !changed.Timestamp.Equal(at) || changed.Key() != "expenses" {
		t.Errorf("expected time %v and key expenses, got %v %s", at, changed.Timestamp, changed.Key())
	}

	keys := []string{"kansai_itinerary_v1"}
	reloaded := Reloaded("pull", keys, at)
	keys[0] = "mutated"
	if reloaded.Source != "pull" || reloaded.Keys[0] != "kansai_itinerary_v1" || reloaded.Key() != "trip.reloaded" {
		t.Errorf("unexpected reload event %+v", reloaded)
	}

	failed := SyncStatus(syncer.StatusLoading, syncer.StatusError, errors.New("relay offline"))
	if failed.From != syncer.StatusLoading || failed.To != syncer.StatusError || failed.Error != "relay offline" {
		t.Errorf("unexpected status event %+v", failed)
	}
	if ok := SyncStatus(syncer.StatusLoading, syncer.StatusSuccess, errors.New("stale")); ok.Error != "" {
		t.Errorf("expected no error outside the error state, got %q", ok.Error)
	}

	p := &syncer.Payload{
		Itinerary: []trip.DayItinerary{{ID: 1, Items: []trip.ScheduleItem{{ID: "a"}, {ID: "b"}}}},
		Timestamp: 1700000000000,
	}
	relayed := Relayed(p)
	if relayed.PayloadTimestamp != p.Timestamp || relayed.Preview == nil || relayed.Preview.Items != 2 {
		t.Errorf("unexpected relay event %+v", relayed)
	}
	if !relayed.WantsPull() || changed.WantsPull() {
		t.Error("only relay updates should ask devices to pull")
	}
}

// TestEventFraming tests the WebSocket and SSE framing of an event.
func TestEventFraming(t *testing.T) {
	e := Event{Seq: 7, Type: CollectionChanged, Collection: "coupons", Action: "remove"}

	msg := e.Message()
	if msg.Type != "collection.changed" {
		t.Errorf("expected collection.changed, got %s", msg.Type)
	}

	framed := e.SSE()
	if framed.Event != "collection.changed" || framed.ID != "7" {
		t.Errorf("unexpected SSE frame %+v", framed)
	}
	raw, err := json.Marshal(framed.Data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"collection":"coupons"`) || strings.Contains(string(raw), `"source"`) {
		t.Errorf("unexpected payload %s", raw)
	}

	if id := (Event{Type: ClientConnected}).SSE().ID; id != "" {
		t.Errorf("expected no id before numbering, got %q", id)
	}
}

// TestRealtimeDeliversToStreams tests that the realtime subscriber reaches
// a connected SSE client and tolerates a WebSocket hub with clients.
func TestRealtimeDeliversToStreams(t *testing.T) {
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(&logger)
	go hub.Run(ctx)
	hub.Register(ws.NewClient("phone", hub, nil))

	b := sse.NewBroadcaster(&logger)
	go b.Run(ctx)
	srv := httptest.NewServer(b)
	defer srv.Close()

	reqCtx, reqCancel := context.WithTimeout(ctx, 5*time.Second)
	defer reqCancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	eventually(t, func() bool { return b.ClientCount() == 1 && hub.ClientCount() == 1 })

	sub := NewRealtime(hub, b)
	if err := sub.Send(Event{Seq: 3, Type: TripReloaded, Source: "import"}); err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}

	lines := bufio.NewScanner(resp.Body)
	var got []string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "event: trip.reloaded") {
			got = append(got, lines.Text())
			lines.Scan()
			got = append(got, lines.Text())
			break
		}
	}
	if len(got) != 2 || got[1] != "id: 3" {
		t.Errorf("unexpected frame %q", got)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}
