package mq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/errs"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects, opens one channel and puts it into confirm mode.
func Dial(cfg config.MQ, useTLS bool) (*Client, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	url := cfg.URL()
	if useTLS {
		conn, err = amqp.DialTLS("amqps"+url[len("amqp"):], &tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		conn, err = amqp.Dial(url)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrRMQConn, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrRMQConn, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: confirm mode: %v", errs.ErrRMQConn, err)
	}

	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopology declares the durable topic exchange and, when queue is set,
// a durable queue bound to it with bindingKey.
func (c *Client) DeclareTopology(exchange, queue, bindingKey string) error {
	if err := c.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if queue == "" {
		return nil
	}
	if _, err := c.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := c.ch.QueueBind(queue, bindingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}
	return nil
}

// Publish sends a persistent JSON message and waits for the broker confirm
// of that message.
func (c *Client) Publish(ctx context.Context, exchange, key, messageID string, body []byte, headers amqp.Table) error {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Headers:      headers,
		Body:         body,
	})
	if err != nil {
		return err
	}
	if dc == nil {
		return errors.New("channel is not in confirm mode")
	}
	return awaitConfirm(ctx, dc)
}

// confirmation is the part of amqp.DeferredConfirmation Publish waits on.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

func awaitConfirm(ctx context.Context, dc confirmation) error {
	if dc == nil {
		return errors.New("channel is not in confirm mode")
	}
	ack, err := dc.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ack {
		return errs.ErrRMQNack
	}
	return nil
}

func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

func (c *Client) Cancel(consumer string) error { return c.ch.Cancel(consumer, false) }
