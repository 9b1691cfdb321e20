package outbox

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Producer delivers outbox batches through one shared Kafka writer. Messages
// carry their own topic, so a single writer serves the whole event catalog.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Producer for the given brokers.
func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

// WriteMessages publishes the batch. Each message must set its Topic.
func (p *Producer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close releases the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
