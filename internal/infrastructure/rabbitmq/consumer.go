package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
)

// EventHandler processes one decoded event. An error requeues the delivery.
type EventHandler interface {
	Handle(ctx context.Context, e entity.DomainEvent) error
}

// BindingKeys are the routing keys the notification queue listens on.
var BindingKeys = []string{"user.#", "password_reset.#"}

// DeclareQueue declares the durable queue and binds it to exchange.
func DeclareQueue(ch *amqp.Channel, exchange, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	for _, key := range BindingKeys {
		if err := ch.QueueBind(queue, key, exchange, false, nil); err != nil {
			return err
		}
	}
	return nil
}

type Consumer struct {
	handler EventHandler
	logger  *logrus.Logger
	timeout time.Duration
}

func NewConsumer(handler EventHandler, logger *logrus.Logger) *Consumer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Consumer{handler: handler, logger: logger, timeout: 15 * time.Second}
}

// Run handles deliveries until msgs is closed or ctx is done.
func (c *Consumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			c.Process(ctx, d)
		}
	}
}

// Process acks handled deliveries, drops undecodable ones and requeues the
// rest.
func (c *Consumer) Process(ctx context.Context, d amqp.Delivery) {
	log := c.logger.WithFields(logrus.Fields{"message_id": d.MessageId, "routing_key": d.RoutingKey})

	var env Envelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		log.WithError(err).Warn("dropping malformed message")
		_ = d.Nack(false, false)
		return
	}
	event, err := env.Decode()
	if err != nil {
		log.WithError(err).Warn("dropping undecodable event")
		_ = d.Nack(false, false)
		return
	}

	hctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.handler.Handle(hctx, event); err != nil {
		// Redelivered messages that fail again are dropped instead of looping.
		requeue := !d.Redelivered
		log.WithError(err).WithField("requeue", requeue).Error("event handling failed")
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}
