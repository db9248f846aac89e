package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/microservices/order/domain/dao"
)

// Broker is the part of mq.Client the publisher needs.
type Broker interface {
	Publish(ctx context.Context, exchange, key, messageID string, body []byte, headers amqp.Table) error
}

type AMQPPublisher struct {
	broker   Broker
	exchange string
	timeout  time.Duration
}

func NewAMQPPublisher(broker Broker, exchange string) *AMQPPublisher {
	return &AMQPPublisher{broker: broker, exchange: exchange, timeout: 5 * time.Second}
}

func (p *AMQPPublisher) PublishOrder(ctx context.Context, ev dao.OrderEvent) error {
	return p.publish(ctx, ev.Type, ev)
}

func (p *AMQPPublisher) PublishSettlement(ctx context.Context, ev dao.SettlementEvent) error {
	return p.publish(ctx, ev.Type, ev)
}

func (p *AMQPPublisher) publish(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	headers := amqp.Table{"x-source": "pos-service"}
	if err := p.broker.Publish(ctx, p.exchange, key, uuid.NewString(), body, headers); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

// Nop drops every event. Used when RabbitMQ is disabled.
type Nop struct{}

func (Nop) PublishOrder(context.Context, dao.OrderEvent) error           { return nil }
func (Nop) PublishSettlement(context.Context, dao.SettlementEvent) error { return nil }
