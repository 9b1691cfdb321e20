package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type captureWriter struct {
	written []kafka.Message
	err     error
}

func (c *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if c.err != nil {
		return c.err
	}
	c.written = append(c.written, msgs...)
	return nil
}

func TestDeliverMapsMessages(t *testing.T) {
	writer := &captureWriter{}
	d := &Dispatcher{producer: writer}

	messages := []Message{
		{EventID: 1, Topic: "fitness_workouts", PartitionKey: "user-1", Payload: []byte(`{"workout_id":"w-1"}`)},
		{EventID: 2, Topic: "fitness_leaderboard", PartitionKey: "leaderboard", Payload: []byte(`{}`)},
	}

	if err := d.deliver(context.Background(), messages); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if len(writer.written) != 2 {
		t.Fatalf("expected 2 records got %d", len(writer.written))
	}
	if writer.written[0].Topic != "fitness_workouts" {
		t.Fatalf("unexpected topic %s", writer.written[0].Topic)
	}
	if string(writer.written[0].Key) != "user-1" {
		t.Fatalf("unexpected key %s", writer.written[0].Key)
	}
	if string(writer.written[1].Value) != `{}` {
		t.Fatalf("unexpected payload %s", writer.written[1].Value)
	}
}

func TestDeliverPropagatesWriterError(t *testing.T) {
	wantErr := errors.New("broker unavailable")
	d := &Dispatcher{producer: &captureWriter{err: wantErr}}

	err := d.deliver(context.Background(), []Message{{EventID: 1, Topic: "t"}})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected writer error got %v", err)
	}
}
