package rabbitmq

import (
	"context"
	"fmt"
	"passreset/internal/core/domain/logging"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection wraps amqp.Connection and redials the broker when the
// connection drops.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

// Channel opens a channel that is recreated after unexpected closes.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go c.keepChannelAlive(channel)
	return channel, nil
}

func (c *Connection) keepChannelAlive(channel *Channel) {
	ctx := context.Background()
	for {
		reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error))
		if !ok || channel.IsClosed() {
			channel.Close()
			return
		}

		c.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)

			ch, err := c.Connection.Channel()
			if err == nil {
				c.log.Info(ctx, "RabbitMQ channel has been recreated.")
				channel.Channel = ch
				break
			}
			c.log.Error(ctx, "Could not recreate RabbitMQ channel.", logging.Entry("err", err))
		}
	}
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{Connection: conn, log: log}
	go connection.keepAlive(url)
	return connection, nil
}

func (c *Connection) keepAlive(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)

			conn, err := amqp.Dial(url)
			if err == nil {
				c.Connection = conn
				c.log.Info(ctx, "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

// Channel wraps amqp.Channel and remembers whether it was closed on purpose.
type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if ch.IsClosed() {
		return amqp.ErrClosed
	}
	atomic.StoreInt32(&ch.closed, 1)
	return ch.Channel.Close()
}

// DeclareTopicExchange makes sure a durable topic exchange exists.
func (ch *Channel) DeclareTopicExchange(name string) error {
	return ch.Channel.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}
