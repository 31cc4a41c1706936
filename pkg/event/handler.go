package event

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// keepAliveInterval is how often a comment is sent on idle streams so proxies don't close them.
const keepAliveInterval = 30 * time.Second

func NewHandler(logger *slog.Logger, broker broker) Handler {
	return Handler{logger: logger, broker: broker}
}

type Handler struct {
	logger *slog.Logger
	broker broker
}

type broker interface {
	Subscribe(types ...string) (uuid.UUID, <-chan Event)
	Unsubscribe(id uuid.UUID)
}

type StreamEventsRequest struct {
	Type string `form:"type" binding:"omitempty,oneOf=channel.soap.created channel.soap.updated channel.soap.deleted"`
}

// StreamEvents streams events to the client
func (h Handler) StreamEvents(c *gin.Context) {
	// swagger:route GET /events streamEvents
	//
	// Stream events
	//
	// Stream changes of channel URL definitions as Server-Sent Events. Optionally filtered by type
	//
	// responses:
	//   200: Stream
	//   400: Error
	//   401: Error
	//
	// security:
	//   basicAuth:
	var request StreamEventsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		_ = c.Error(errdef.NewBadRequest("invalid event type %q", request.Type))
		return
	}

	var types []string
	if request.Type != "" {
		types = append(types, request.Type)
	}

	ctx := c.Request.Context()
	id, events := h.broker.Subscribe(types...)
	defer h.broker.Unsubscribe(id)
	h.logger.InfoContext(ctx, "Client subscribed to events", "subscriberId", id, "types", strings.Join(types, ","))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			h.logger.InfoContext(ctx, "Client unsubscribed from events", "subscriberId", id)
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{
				Id:    event.EventID,
				Event: event.Type,
				Data:  event,
			})
			return true
		case <-keepAlive.C:
			_, err := io.WriteString(w, ": keep-alive\n\n")
			return err == nil
		}
	})
}
