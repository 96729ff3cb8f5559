// Package audit publishes entity write events to Kafka so downstream
// consumers (log aggregation, compliance) can follow what changed.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event is one audit record: which entity, what happened, to which row.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     int64     `json:"id"`
	At     time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Emit publishes one event. Failures are reported to the caller; writes
// to the database are never rolled back over a lost audit message.
func (p *Producer) Emit(ctx context.Context, entity, action string, id int64) error {
	ev := Event{Entity: entity, Action: action, ID: id, At: time.Now().UTC()}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entity),
		Value: b,
		Time:  ev.At,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
