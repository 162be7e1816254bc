package bus

import (
	"encoding/json"
	"errors"

	"github.com/streadway/amqp"
)

// Consumer reads control or status messages off the bus
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	done    chan struct{}
}

// NewConsumer dials the broker and declares the exchanges
func NewConsumer(url string) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := declareExchanges(ch); err != nil {
		conn.Close()
		return nil, err
	}

	return &Consumer{conn: conn, channel: ch, done: make(chan struct{})}, nil
}

// SubscribeStatus delivers every status update on the bus to handler.
// Blocks until Close is called or the broker connection drops.
func (c *Consumer) SubscribeStatus(handler func(StatusUpdate)) error {
	deliveries, err := c.subscribe(StatusExchange, []string{StatusPattern})
	if err != nil {
		return err
	}

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("status subscription closed by broker")
			}
			var update StatusUpdate
			if err := json.Unmarshal(d.Body, &update); err != nil {
				continue
			}
			handler(update)
		case <-c.done:
			return nil
		}
	}
}

// SubscribeControl delivers lifecycle commands addressed to the named
// service, including broadcasts, to handler. Blocks like SubscribeStatus.
func (c *Consumer) SubscribeControl(service string, handler func(ControlMessage)) error {
	deliveries, err := c.subscribe(ControlExchange, []string{ControlKey(service), BroadcastControlKey})
	if err != nil {
		return err
	}

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("control subscription closed by broker")
			}
			var msg ControlMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				continue
			}
			handler(msg)
		case <-c.done:
			return nil
		}
	}
}

// Close stops any blocked subscription and tears down the connection
func (c *Consumer) Close() {
	close(c.done)
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// subscribe binds an exclusive auto-delete queue to the exchange under
// each of the given routing keys and starts consuming from it
func (c *Consumer) subscribe(exchange string, keys []string) (<-chan amqp.Delivery, error) {
	q, err := c.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if err := c.channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			return nil, err
		}
	}

	return c.channel.Consume(q.Name, "", true, true, false, false, nil)
}
