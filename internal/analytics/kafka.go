package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the tracker uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Event is the JSON value published for each tracked event.
type Event struct {
	Name       string         `json:"event"`
	Source     string         `json:"source"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// KafkaTracker publishes events to a Kafka topic, keyed by event name so all
// events of one kind land on the same partition.
type KafkaTracker struct {
	w      MessageWriter
	source string
	now    func() time.Time
}

// NewKafkaTracker builds a tracker that stamps events with source.
func NewKafkaTracker(w MessageWriter, source string) *KafkaTracker {
	return &KafkaTracker{w: w, source: source, now: time.Now}
}

// NewKafkaWriter returns an async writer for topic. Close it on shutdown to
// flush buffered events.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 500 * time.Millisecond,
	}
}

func (t *KafkaTracker) Track(ctx context.Context, event string, props map[string]any) error {
	now := t.now().UTC()
	value, err := json.Marshal(Event{Name: event, Source: t.source, Properties: props, Timestamp: now})
	if err != nil {
		return fmt.Errorf("analytics.KafkaTracker.Track: encode: %w", err)
	}
	err = t.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event),
		Value: value,
		Time:  now,
	})
	if err != nil {
		return fmt.Errorf("analytics.KafkaTracker.Track: %w", err)
	}
	return nil
}
