package events

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"recipe-api/internal/testutil"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "recipe-created-12", Key(RecipeCreated, 12))
	assert.Equal(t, "user-deleted-3", Key(UserDeleted, 3))
}

func TestNewKafkaPublisherWithoutBrokers(t *testing.T) {
	p := NewKafkaPublisher(nil, "recipe-events")

	_, isNoop := p.(noopPublisher)
	assert.True(t, isNoop)
	assert.NoError(t, p.Publish(context.Background(), RecipeCreated, 1, map[string]string{"title": "Soup"}))
	assert.NoError(t, p.Close())
}

func TestNewKafkaPublisherWithBrokers(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "recipe-events")

	kp, ok := p.(*kafkaPublisher)
	if assert.True(t, ok) {
		assert.Equal(t, "recipe-events", kp.writer.Topic)
		assert.True(t, kp.writer.AllowAutoTopicCreation)
		assert.Equal(t, 10*time.Millisecond, kp.writer.BatchTimeout)
		assert.Equal(t, kafka.RequireOne, kp.writer.RequiredAcks)
		assert.Equal(t, PublishTimeout, kp.writer.WriteTimeout)
	}
	assert.NoError(t, p.Close())
}

func TestPublishHonoursContextDeadline(t *testing.T) {
	p := NewKafkaPublisher([]string{testutil.SilentListener(t)}, "recipe-events")
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Publish(ctx, RecipeCreated, 1, nil)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), PublishTimeout)
}
