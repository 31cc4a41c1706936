// Package event publishes changes made through the console. Events are fanned out to console
// sessions streaming them via Server-Sent Events and, if configured, to a RabbitMQ topic exchange.
package event

import (
	"context"
	"time"

	"github.com/dhis2-sre/channel-admin/internal/middleware"
	"github.com/google/uuid"
)

const (
	TypeSOAPChannelCreated = "channel.soap.created"
	TypeSOAPChannelUpdated = "channel.soap.updated"
	TypeSOAPChannelDeleted = "channel.soap.deleted"
)

// Event describes a change of a channel URL definition. Type doubles as the RabbitMQ routing key.
type Event struct {
	EventID       string    `json:"eventId"`
	Type          string    `json:"type"`
	ClusterID     uint      `json:"clusterId"`
	ID            string    `json:"id"`
	URLPattern    string    `json:"urlPattern,omitempty"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Time          time.Time `json:"time"`
}

// New creates an event of given type for the definition with id. The correlation ID of the request
// in ctx is carried along.
func New(ctx context.Context, eventType string, clusterID uint, id, urlPattern string) Event {
	correlationID, _ := middleware.GetCorrelationID(ctx)
	return Event{
		EventID:       uuid.NewString(),
		Type:          eventType,
		ClusterID:     clusterID,
		ID:            id,
		URLPattern:    urlPattern,
		CorrelationID: correlationID,
		Time:          time.Now().UTC(),
	}
}
