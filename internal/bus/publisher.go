package bus

import (
	"encoding/json"
	"sync"

	"github.com/streadway/amqp"
)

// Publisher pushes control and status messages onto the bus
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

// NewPublisher dials the broker and declares the exchanges
func NewPublisher(url string) (*Publisher, error) {
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

	return &Publisher{conn: conn, channel: ch}, nil
}

// PublishStatus sends a status update for the named service
func (p *Publisher) PublishStatus(update StatusUpdate) error {
	return p.publish(StatusExchange, StatusKey(update.Service), update.ID, update)
}

// PublishControl sends a lifecycle command to the named service's agent
func (p *Publisher) PublishControl(msg ControlMessage) error {
	return p.publish(ControlExchange, ControlKey(msg.Service), msg.ID, msg)
}

// Close the channel and connection
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

func (p *Publisher) publish(exchange, key, id string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.Publish(exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		Body:         body,
	})
}

func declareExchanges(ch *amqp.Channel) error {
	for _, ex := range []string{ControlExchange, StatusExchange} {
		if err := ch.ExchangeDeclare(ex, "topic", true, false, false, false, nil); err != nil {
			return err
		}
	}
	return nil
}
