package events

import (
	"context"
	"fmt"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/config"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

// NoopPublisher drops events. Used when events.driver is "none".
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, evt *order.Placed) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

func NewPublisher(cfg config.EventsConfig, log *logger.Logger) (ports.EventPublisher, error) {
	switch cfg.Driver {
	case "rabbitmq":
		p, err := NewRabbitPublisher(cfg.RabbitMQURL, cfg.Queue)
		if err != nil {
			return nil, err
		}
		log.Info("Publishing order events to RabbitMQ", "queue", cfg.Queue)
		return p, nil
	case "kafka":
		log.Info("Publishing order events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log), nil
	case "none", "":
		return NoopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
