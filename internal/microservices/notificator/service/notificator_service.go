package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/order/domain/dao"
	"restaurant-pos/internal/microservices/receipt"
)

var (
	ErrMalformed      = errors.New("malformed settlement event")
	ErrDeliveryClosed = errors.New("delivery channel closed")
)

const consumerTag = "receipt-subscriber"

type Consumer interface {
	Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error)
	Cancel(consumer string) error
}

type NotificatorService struct {
	consumer Consumer
	queue    string
	prefetch int
	lg       *logger.Logger
}

func NewNotificatorService(c Consumer, queue string, prefetch int, lg *logger.Logger) *NotificatorService {
	return &NotificatorService{consumer: c, queue: queue, prefetch: prefetch, lg: lg}
}

// Run consumes settlement events until ctx is done. A delivery channel closed
// by the broker before that is reported as ErrDeliveryClosed.
func (ns *NotificatorService) Run(ctx context.Context) error {
	msgs, err := ns.consumer.Consume(ns.queue, consumerTag, ns.prefetch)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ns.queue, err)
	}
	ns.lg.Info("consuming", map[string]any{"queue": ns.queue, "prefetch": ns.prefetch})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range msgs {
			ns.Process(d)
		}
	}()

	select {
	case <-ctx.Done():
		ns.lg.Info("graceful_shutdown", nil)
		_ = ns.consumer.Cancel(consumerTag)
		<-done
	case <-done:
		if ctx.Err() == nil {
			ns.lg.Error("consumer_stopped", ErrDeliveryClosed, map[string]any{"queue": ns.queue})
			return fmt.Errorf("consume %s: %w", ns.queue, ErrDeliveryClosed)
		}
	}
	return nil
}

// Process prints one delivery. Messages that cannot be decoded are dropped
// (nack without requeue); everything else is acked.
func (ns *NotificatorService) Process(d amqp.Delivery) {
	text, err := Render(d.Body)
	if err != nil {
		ns.lg.Error("receipt_rejected", err, map[string]any{"message_id": d.MessageId})
		_ = d.Nack(false, false)
		return
	}
	ns.lg.Info("receipt_printed", map[string]any{"message_id": d.MessageId, "receipt": text})
	_ = d.Ack(false)
}

// Render decodes a table.settled event and returns the printed receipt.
func Render(body []byte) (string, error) {
	var ev dao.SettlementEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ev.Type != dao.EventTableSettled || len(ev.Receipt.Lines) == 0 {
		return "", fmt.Errorf("%w: event %q with %d lines", ErrMalformed, ev.Type, len(ev.Receipt.Lines))
	}
	return receipt.String(ev.Receipt), nil
}
