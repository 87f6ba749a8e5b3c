// Package rabbitmq publishes order lifecycle events to a RabbitMQ topic
// exchange so downstream consumers (analytics, back office) can follow the
// order flow without touching the database.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
)

const (
	ordersExchange = "orders.events"
)

// Config holds the broker connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (c Config) url() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.User, c.Password, c.Host, c.Port)
}

// Publisher implements ports.OrderEventPublisher over an amqp channel.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// NewPublisher dials the broker and declares the orders exchange.
func NewPublisher(config Config, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(config.url())
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:   conn,
		ch:     ch,
		logger: logger.With("component", "rabbitmq"),
	}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

type statusChangedEvent struct {
	Number     string    `json:"number"`
	Customer   string    `json:"customer"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	Vendor     *string   `json:"vendor,omitempty"`
	Partner    *string   `json:"partner,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishStatusChanged emits one persistent message per status transition,
// routed by the new status.
func (p *Publisher) PublishStatusChanged(ctx context.Context, aggregate *order.Order) error {
	event := statusChangedEvent{
		Number:     aggregate.Number().String(),
		Customer:   aggregate.Customer().String(),
		Status:     aggregate.Status().String(),
		Total:      aggregate.Total().Amount(),
		Vendor:     phoneString(aggregate.Vendor()),
		Partner:    phoneString(aggregate.DeliveryPartner()),
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	routingKey := fmt.Sprintf("order.status.%s", aggregate.Status().String())
	err = p.ch.PublishWithContext(ctx, ordersExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.logger.Debug("published status change", "number", event.Number, "status", event.Status)
	return nil
}

func phoneString(phone *kernel.Phone) *string {
	if phone == nil {
		return nil
	}
	value := phone.String()
	return &value
}
