// Package broker broadcasts snapshot cache invalidations between API replicas
// over a RabbitMQ fanout exchange.
package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"fintrack/internal/logger"
	"fintrack/internal/uuid"
)

const publishTimeout = 5 * time.Second

// Client publishes and consumes invalidation messages. Each client binds its
// own exclusive queue, so every replica receives every message.
type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
	origin   string
}

// NewClient dials url and declares the fanout exchange and this replica's
// queue.
func NewClient(url, exchange string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		origin:   uuid.New(),
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Server-named, exclusive and auto-deleted: the queue lives only as long
	// as this replica's connection.
	q, err := c.channel.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	c.queue = q.Name

	if err := c.channel.QueueBind(c.queue, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Origin identifies this replica in published messages.
func (c *Client) Origin() string {
	return c.origin
}

// PublishInvalidation broadcasts that userID's snapshot is stale.
func (c *Client) PublishInvalidation(ctx context.Context, userID string) error {
	body, err := NewInvalidationMessage(userID, c.origin).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Consume applies invalidations from other replicas until ctx is done or the
// channel closes. Messages this replica published are acknowledged and
// skipped, since they were already applied locally.
func (c *Client) Consume(ctx context.Context, apply func(userID string)) error {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer
		false,   // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log := logger.Get()
	log.Infow("Consuming snapshot invalidations", "exchange", c.exchange, "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			if handleDelivery(delivery.Body, c.origin, apply) {
				_ = delivery.Ack(false)
			} else {
				_ = delivery.Nack(false, false)
			}
		}
	}
}

// handleDelivery decodes body and applies it unless it came from origin. It
// reports whether the message should be acknowledged.
func handleDelivery(body []byte, origin string, apply func(userID string)) bool {
	msg, err := InvalidationMessageFromJSON(body)
	if err != nil {
		logger.Get().Warnw("Dropping malformed invalidation message", "error", err)
		return false
	}
	if msg.Origin != origin {
		apply(msg.UserID)
	}
	return true
}

// Close closes the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
