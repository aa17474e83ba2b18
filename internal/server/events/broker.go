package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HistorySize is how many recent events the broker keeps for replay.
const HistorySize = 128

// Broker numbers trip events, remembers the most recent ones and fans each
// out to every subscriber.
type Broker struct {
	subscribers []Subscriber
	events      chan Event
	register    chan Subscriber
	unregister  chan Subscriber
	mu          sync.RWMutex
	logger      *zerolog.Logger

	histMu  sync.Mutex
	seq     uint64
	history []Event
}

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		subscribers: make([]Subscriber, 0),
		events:      make(chan Event, 256),
		register:    make(chan Subscriber, 16),
		unregister:  make(chan Subscriber, 16),
		logger:      logger,
		history:     make([]Event, 0, HistorySize),
	}
}

// Run delivers events until ctx is cancelled, then closes every subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for _, sub := range b.subscribers {
				_ = sub.Close()
			}
			b.subscribers = nil
			b.mu.Unlock()
			b.logger.Info().Uint64("last_seq", b.LastSeq()).Msg("Event broker shut down")
			return

		case sub := <-b.register:
			b.mu.Lock()
			b.subscribers = append(b.subscribers, sub)
			total := len(b.subscribers)
			b.mu.Unlock()
			b.logger.Debug().Int("total_subscribers", total).Msg("Subscriber registered")

		case sub := <-b.unregister:
			b.mu.Lock()
			for i, s := range b.subscribers {
				if s == sub {
					b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
					_ = s.Close()
					break
				}
			}
			total := len(b.subscribers)
			b.mu.Unlock()
			b.logger.Debug().Int("total_subscribers", total).Msg("Subscriber unregistered")

		case event := <-b.events:
			b.deliver(event)
		}
	}
}

func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, sub := range subs {
		go func(s Subscriber) {
			if err := s.Send(event); err != nil {
				b.logger.Warn().
					Err(err).
					Uint64("seq", event.Seq).
					Str("event_type", string(event.Type)).
					Msg("Failed to send trip event")
			}
		}(sub)
	}

	log := b.logger.Debug().
		Uint64("seq", event.Seq).
		Str("event_type", string(event.Type)).
		Int("subscribers", len(subs))
	if event.Collection != "" {
		log = log.Str("collection", event.Collection).Str("action", event.Action)
	}
	log.Msg("Trip event delivered")
}

// Publish numbers e, records it in the history and queues it for every
// subscriber. A zero Timestamp is set to now. Publish never blocks; when
// the queue is full the event is dropped from live delivery but stays
// available to Since.
func (b *Broker) Publish(e Event) Event {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.histMu.Lock()
	b.seq++
	e.Seq = b.seq
	if len(b.history) == HistorySize {
		copy(b.history, b.history[1:])
		b.history = b.history[:HistorySize-1]
	}
	b.history = append(b.history, e)
	b.histMu.Unlock()

	select {
	case b.events <- e:
	default:
		b.logger.Warn().
			Uint64("seq", e.Seq).
			Str("event_type", string(e.Type)).
			Msg("Event channel full, event dropped")
	}
	return e
}

// Since returns the remembered events numbered after seq, oldest first.
// A seq ahead of the broker comes from before a restart, so the whole
// history is returned.
func (b *Broker) Since(seq uint64) []Event {
	b.histMu.Lock()
	defer b.histMu.Unlock()

	if seq > b.seq {
		seq = 0
	}
	out := make([]Event, 0, len(b.history))
	for _, e := range b.history {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}

// LastSeq returns the number of the latest published event.
func (b *Broker) LastSeq() uint64 {
	b.histMu.Lock()
	defer b.histMu.Unlock()
	return b.seq
}

// Subscribe registers a new subscriber to receive events.
func (b *Broker) Subscribe(sub Subscriber) {
	b.register <- sub
}

// Unsubscribe removes a subscriber from receiving events.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.unregister <- sub
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
