package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cryptoexchange/internal/domain"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// OrderEventPublisher sends order events keyed by order id, so all events of one order land in one partition.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

func (p *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	msg, err := newOrderMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s event for order %s: %w", event.Type, event.OrderID, err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func newOrderMessage(event domain.OrderEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}
