package passwordevents

import (
	"context"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/rabbitmq/schema"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *rabbitmq.Channel the publisher needs.
type Channel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

type RabbitMQ struct {
	log      logging.Logger
	channel  Channel
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel Channel, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func (p *RabbitMQ) PublishPasswordChanged(ctx context.Context, event user.PasswordChangedEvent) error {
	message := schema.PasswordChanged{Email: string(event.Email), ChangedAt: event.ChangedAt.UTC()}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	messageID := uuid.NewString()
	err = p.channel.PublishWithContext(ctx, p.exchange, schema.PasswordChangedRoutingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    messageID,
		Timestamp:    event.ChangedAt,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err)
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", schema.PasswordChangedRoutingKey),
		logging.Entry("messageID", messageID),
	)
	return nil
}
