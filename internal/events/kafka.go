package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// PublishBatchTimeout bounds how long a single Publish waits for its batch to flush.
const PublishBatchTimeout = 10 * time.Millisecond

// KafkaPublisher publishes JSON events. One writer is shared by all topics; the topic
// is set per message.
type KafkaPublisher struct {
	writer *kafkaGo.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Balancer:               &kafkaGo.LeastBytes{},
			AllowAutoTopicCreation: true,
			// a checkout publishes one message at a time; don't wait for a batch to fill
			BatchTimeout: PublishBatchTimeout,
		},
	}
}

func (k *KafkaPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return k.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
