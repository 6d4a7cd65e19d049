package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"airport-booking/internal/models"
)

// Producer streams booking events to Kafka.
type Producer struct {
	Writer *kafka.Writer
	Topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer, Topic: topic}
}

// PublishOrderCreated streams the order creation event. Called after the
// transaction commits; failures are the caller's to log, not to roll back.
func (p *Producer) PublishOrderCreated(order models.Order) error {
	msgBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(order.ID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NoopPublisher satisfies the publisher contract when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(models.Order) error { return nil }
