package event

import (
	"context"
	"log/slog"

	"github.com/dhis2-sre/channel-admin/internal/metrics"
)

// Sink is a destination of events.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// NewPublisher returns a publisher sending every event to the named sinks.
func NewPublisher(logger *slog.Logger, sinks map[string]Sink) Publisher {
	return Publisher{
		logger: logger,
		sinks:  sinks,
	}
}

// Publisher publishes events to all its sinks. Failing sinks are logged and counted but never
// reported to the caller as the change the event describes already happened.
type Publisher struct {
	logger *slog.Logger
	sinks  map[string]Sink
}

func (p Publisher) Publish(ctx context.Context, event Event) {
	for name, s := range p.sinks {
		result := "ok"
		if err := s.Publish(ctx, event); err != nil {
			result = "error"
			p.logger.WarnContext(ctx, "Failed to publish event", "sink", name, "type", event.Type, "eventId", event.EventID, "error", err)
		}
		metrics.EventsPublishedTotal.WithLabelValues(event.Type, name, result).Inc()
	}
}
