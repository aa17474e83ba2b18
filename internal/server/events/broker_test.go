package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingSubscriber struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (r *recordingSubscriber) Send(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSubscriber) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingSubscriber) snapshot() ([]Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...), r.closed
}

func eventually(t *testing.T, cond func() bool) {
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

// TestBroker_FanOut tests that every subscriber receives a published event.
func TestBroker_FanOut(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	ws, sse := &recordingSubscriber{}, &recordingSubscriber{}
	b.Subscribe(ws)
	b.Subscribe(sse)
	eventually(t, func() bool { return b.SubscriberCount() == 2 })

	at := time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC)
	b.Publish(Event{Type: CollectionChanged, Timestamp: at, Collection: "expenses", Action: "add"})

	for _, sub := range []*recordingSubscriber{ws, sse} {
		eventually(t, func() bool {
			got, _ := sub.snapshot()
			return len(got) == 1
		})
		got, _ := sub.snapshot()
		if got[0].Type != CollectionChanged || !got[0].Timestamp.Equal(at) || got[0].Seq != 1 {
			t.Errorf("unexpected event %+v", got[0])
		}
	}
}

// TestBroker_Unsubscribe tests that a removed subscriber is closed.
func TestBroker_Unsubscribe(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	sub := &recordingSubscriber{}
	b.Subscribe(sub)
	eventually(t, func() bool { return b.SubscriberCount() == 1 })

	b.Unsubscribe(sub)
	eventually(t, func() bool { return b.SubscriberCount() == 0 })
	if _, closed := sub.snapshot(); !closed {
		t.Error("expected subscriber to be closed")
	}
}

// TestBroker_Shutdown tests that cancelling the context closes subscribers.
func TestBroker_Shutdown(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)

	sub := &recordingSubscriber{}
	b.Subscribe(sub)
	eventually(t, func() bool { return b.SubscriberCount() == 1 })

	cancel()
	eventually(t, func() bool { return b.SubscriberCount() == 0 })
	if _, closed := sub.snapshot(); !closed {
		t.Error("expected subscriber to be closed on shutdown")
	}
}

// TestBroker_SubscribeBeforeRun tests that subscribing before Run does not block.
func TestBroker_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			b.Subscribe(&recordingSubscriber{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Subscribe blocked before Run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)
	eventually(t, func() bool { return b.SubscriberCount() == 3 })
}

// TestBroker_PublishNeverBlocks tests that a full queue drops events.
func TestBroker_PublishNeverBlocks(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(b.events)+10; i++ {
			b.Publish(Event{Type: TripReloaded, Source: "pull"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no running broker")
	}
}

// TestBroker_SinceReplaysMissedEvents tests numbering and the replay history.
func TestBroker_SinceReplaysMissedEvents(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	first := b.Publish(Event{Type: CollectionChanged, Collection: "expenses"})
	second := b.Publish(Event{Type: CollectionChanged, Collection: "checklist"})
	third := b.Publish(Event{Type: TripReloaded, Source: "pull"})

	if first.Seq != 1 || second.Seq != 2 || third.Seq != 3 {
		t.Fatalf("unexpected sequence %d %d %d", first.Seq, second.Seq, third.Seq)
	}
	if first.Timestamp.IsZero() {
		t.Error("expected Publish to stamp the event")
	}

	missed := b.Since(1)
	if len(missed) != 2 || missed[0].Collection != "checklist" || missed[1].Type != TripReloaded {
		t.Errorf("unexpected replay %+v", missed)
	}
	if got := b.Since(3); len(got) != 0 {
		t.Errorf("expected nothing after the latest event, got %d", len(got))
	}
	if got := b.Since(99); len(got) != 3 {
		t.Errorf("expected full history for a seq from before a restart, got %d", len(got))
	}
}

// TestBroker_HistoryIsBounded tests that only the newest events are kept.
func TestBroker_HistoryIsBounded(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	for i := 0; i < HistorySize+5; i++ {
		b.Publish(Event{Type: CollectionChanged, Collection: "coupons"})
	}

	got := b.Since(0)
	if len(got) != HistorySize {
		t.Fatalf("expected %d events, got %d", HistorySize, len(got))
	}
	if got[0].Seq != 6 || got[len(got)-1].Seq != b.LastSeq() {
		t.Errorf("expected seq 6..%d, got %d..%d", b.LastSeq(), got[0].Seq, got[len(got)-1].Seq)
	}
}
