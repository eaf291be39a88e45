// Package kafka publishes notification audit records to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/notifier"
)

// Recorder produces audit records to the configured topic.
// It implements notifier.Recorder.
type Recorder struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewRecorder creates a Kafka producer for the audit topic.
func NewRecorder(brokers []string, topic string, logger *slog.Logger) *Recorder {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Recorder{writer: w, logger: logger}
}

// Record serializes and publishes one audit record.
func (r *Recorder) Record(ctx context.Context, rec notifier.Record) error {
	msg, err := serializeRecord(rec)
	if err != nil {
		return err
	}
	return r.writer.WriteMessages(ctx, msg)
}

func (r *Recorder) Close() error {
	return r.writer.Close()
}

// serializeRecord marshals an audit record into a Kafka message keyed by
// the storm's start instant, so replays of the same event land in the same
// partition.
func serializeRecord(rec notifier.Record) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize audit record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.EventStart.Format(time.RFC3339)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "outcome", Value: []byte(rec.Outcome)},
			{Key: "sent_at", Value: []byte(rec.SentAt.Format(time.RFC3339))},
		},
	}, nil
}
