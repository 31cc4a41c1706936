package event

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NewAMQPPublisher opens a channel on conn and declares the durable topic exchange events are
// published to.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open AMQP channel: %v", err)
	}

	err = channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %v", exchange, err)
	}

	return &AMQPPublisher{channel: channel, exchange: exchange}, nil
}

// AMQPPublisher publishes events as JSON messages using the event type as routing key.
type AMQPPublisher struct {
	channel  *amqp.Channel
	exchange string
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %v", event.EventID, err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.EventID,
		CorrelationId: event.CorrelationID,
		Timestamp:     event.Time,
		Type:          event.Type,
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event %s to exchange %q: %v", event.EventID, p.exchange, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	return p.channel.Close()
}
