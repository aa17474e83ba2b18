package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

// TestHub_BroadcastReachesClients tests fan-out to registered clients.
func TestHub_BroadcastReachesClients(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c1 := NewClient("phone", hub, nil)
	c2 := NewClient("laptop", hub, nil)
	hub.Register(c1)
	hub.Register(c2)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast(Message{Type: "collection.changed", Timestamp: time.Now()})

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			if msg.Type != "collection.changed" {
				t.Errorf("%s: expected collection.changed, got %s", c.ID(), msg.Type)
			}
		case <-time.After(time.Second):
			t.Errorf("%s: no message received", c.ID())
		}
	}
}

// TestHub_Unregister tests that unregistering closes the client's channel.
func TestHub_Unregister(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := NewClient("phone", hub, nil)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(c)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if _, ok := <-c.send; ok {
		t.Error("expected send channel to be closed")
	}
}

// TestHub_Shutdown tests that cancelling the context drops every client.
func TestHub_Shutdown(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	hub.Register(NewClient("a", hub, nil))
	hub.Register(NewClient("b", hub, nil))
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	cancel()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

// TestHub_RegisterAfterShutdown tests that a stopped hub never blocks
// late Register or Unregister calls.
func TestHub_RegisterAfterShutdown(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	finished := make(chan struct{})
	clients := make([]*Client, 2*cap(hub.register))
	go func() {
		for i := range clients {
			clients[i] = NewClient("late", hub, nil)
			hub.Register(clients[i])
			hub.Unregister(clients[i])
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Register or Unregister blocked after shutdown")
	}
	for _, c := range clients {
		if _, ok := <-c.send; ok {
			t.Fatal("expected late client's send channel to be closed")
		}
	}
	if hub.ClientCount() != 0 {
		t.Errorf("expected no clients, got %d", hub.ClientCount())
	}
}

// TestHub_SlowClientDropped tests that a client with a full buffer is removed.
func TestHub_SlowClientDropped(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := NewClient("slow", hub, nil)
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	for i := 0; i < cap(slow.send)+1; i++ {
		hub.Broadcast(Message{Type: "tick"})
	}
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

// TestClient_Pumps tests a real connection end to end.
func TestClient_Pumps(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient("test", hub, conn)
		hub.Register(c)
		go c.WritePump()
		go c.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast(Message{Type: "trip.reloaded", Data: map[string]any{"source": "pull"}})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var got Message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "trip.reloaded" {
		t.Errorf("expected trip.reloaded, got %s", got.Type)
	}

	_ = conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}
