package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends layout events.  Callers treat failures as non fatal.
type Publisher interface {
	PublishLayoutSaved(ctx context.Context, ev LayoutSavedEvent) error
}

// AMQPPublisher dials the broker for every publish so that a broker
// outage never leaves a stale connection behind.
type AMQPPublisher struct {
	url string
	log *zap.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: log.Named("publisher")}
}

// PublishLayoutSaved publishes ev as a persistent message to LayoutSavedQueue.
func (p *AMQPPublisher) PublishLayoutSaved(ctx context.Context, ev LayoutSavedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(LayoutSavedQueue, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", LayoutSavedQueue, false, false, pub); err != nil {
		p.log.Warn("publish failed", zap.Error(err), zap.Uint64("room_id", ev.RoomID))
		return err
	}
	p.log.Debug("layout event published", zap.Uint64("room_id", ev.RoomID), zap.Int("capacity", ev.Capacity))
	return nil
}

// NopPublisher drops every event.  It is used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishLayoutSaved(context.Context, LayoutSavedEvent) error { return nil }
