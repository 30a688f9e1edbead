package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events keyed by order id, so every event for an
// order lands on the same partition.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
				log.Error(fmt.Sprintf("kafka writer: "+msg, args...))
			}),
		},
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, evt *order.Placed) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", evt.EventType, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(pubCtx, kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: body,
		Time:  evt.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.EventType)},
			{Key: "event-id", Value: []byte(evt.EventID)},
		},
	})
	monitoring.RecordEventPublished("kafka", err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.EventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
