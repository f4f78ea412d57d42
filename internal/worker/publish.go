package worker

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const updatesExchange = "session_updates"

// AMQPPublisher sends session updates to a topic exchange, routed by
// "session.<id>".
type AMQPPublisher struct {
	conn *amqp.Connection
}

func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(updatesExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn}, nil
}

func (p *AMQPPublisher) Publish(update Update) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("session.%s", update.SessionID)

	return ch.Publish(
		updatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
