package inttest

import (
	"fmt"
	"testing"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

// SetupRabbitMQ creates a RabbitMQ container returning an AMQP client ready to send and receive
// messages.
func SetupRabbitMQ(t *testing.T) *AMQP {
	t.Helper()

	container, err := gnomock.Start(
		rabbitmq.Preset(
			rabbitmq.WithUser("console", "console"),
		),
	)
	require.NoError(t, err, "failed to start RabbitMQ")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop RabbitMQ") })

	URI := fmt.Sprintf("amqp://%s:%s@%s/", "console", "console", container.DefaultAddress())
	conn, err := amqp.Dial(URI)
	require.NoErrorf(t, err, "failed to connect to RabbitMQ at %q", URI)
	t.Cleanup(func() {
		require.NoError(t, conn.Close(), "failed to close connection to RabbitMQ")
	})

	ch, err := conn.Channel()
	require.NoError(t, err, "failed to open channel to RabbitMQ")

	return &AMQP{Channel: ch, URI: URI}
}

// AMQP allows making requests to RabbitMQ. It does so by opening a connection and channel to
// RabbitMQ via the low-level github.com/rabbitmq/amqp091-go library.
type AMQP struct {
	Channel *amqp.Channel
	URI     string
}

// BindQueue declares an exclusive queue bound to exchange with routingKey and returns its
// deliveries.
func (a *AMQP) BindQueue(t *testing.T, exchange, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	q, err := a.Channel.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err, "failed to declare queue")
	err = a.Channel.QueueBind(q.Name, routingKey, exchange, false, nil)
	require.NoErrorf(t, err, "failed to bind queue to exchange %q", exchange)
	deliveries, err := a.Channel.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err, "failed to consume queue")
	return deliveries
}
