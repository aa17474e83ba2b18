// Package adapters publishes trip events to transports outside the server.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/agentstation/tripmap/internal/server/events"
)

// MessageWriter is the part of kafka.Writer the subscriber uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig selects the brokers and topic.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaSubscriber publishes events to a Kafka topic so devices outside this
// server's network learn that the trip changed. Messages are keyed by
// Event.Key, so changes to one collection land on one partition in order.
type KafkaSubscriber struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaSubscriber creates a subscriber writing to cfg.Topic.
func NewKafkaSubscriber(cfg KafkaConfig) *KafkaSubscriber {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            3,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaSubscriberWithWriter(w)
}

// NewKafkaSubscriberWithWriter creates a subscriber over an existing writer.
func NewKafkaSubscriberWithWriter(w MessageWriter) *KafkaSubscriber {
	return &KafkaSubscriber{writer: w, timeout: 10 * time.Second}
}

// Send writes the event as JSON.
func (k *KafkaSubscriber) Send(event events.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.Key()),
		Value:   value,
		Time:    event.Timestamp,
		Headers: headers(event),
	})
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func headers(event events.Event) []kafka.Header {
	h := []kafka.Header{
		{Key: "event-type", Value: []byte(event.Type)},
		{Key: "seq", Value: []byte(strconv.FormatUint(event.Seq, 10))},
	}
	if event.WantsPull() {
		h = append(h, kafka.Header{Key: "pull", Value: []byte("true")})
	}
	return h
}

// Close flushes and closes the writer.
func (k *KafkaSubscriber) Close() error {
	return k.writer.Close()
}
