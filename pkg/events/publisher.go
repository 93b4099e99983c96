package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// PublishTimeout bounds a single Publish call.
const PublishTimeout = 2 * time.Second

const (
	UserRegistered = "user-registered"
	UserDeleted    = "user-deleted"
	RecipeCreated  = "recipe-created"
	RecipeDeleted  = "recipe-deleted"
)

type (
	// Publisher emits domain events after a write has committed.
	Publisher interface {
		Publish(ctx context.Context, event string, id uint, payload any) error
		Close() error
	}

	Envelope struct {
		Event      string    `json:"event"`
		ID         uint      `json:"id"`
		OccurredAt time.Time `json:"occurred_at"`
		Payload    any       `json:"payload"`
	}

	kafkaPublisher struct {
		writer *kafka.Writer
	}

	noopPublisher struct{}
)

// NewKafkaPublisher returns a publisher writing to topic, or a no-op one when
// no brokers are configured.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NewNoopPublisher()
	}
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           PublishTimeout,
		},
	}
}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

// Key builds the message key, e.g. recipe-created-12.
func Key(event string, id uint) string {
	return fmt.Sprintf("%s-%d", event, id)
}

func (p *kafkaPublisher) Publish(ctx context.Context, event string, id uint, payload any) error {
	value, err := json.Marshal(Envelope{
		Event:      event,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(Key(event, id)),
		Value: value,
	})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

func (noopPublisher) Publish(context.Context, string, uint, any) error { return nil }

func (noopPublisher) Close() error { return nil }
