// Package log provides slog handlers.
package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/dhis2-sre/channel-admin/internal/middleware"
)

// ContextHandler adds values from the [context.Context] to the [slog.Record]. [slog.Handler] is
// passed to [slog.Logger] which is then used throughout the app. It has to use the same attribute
// keys as the Gin [middleware.RequestLogger] so we can find logs created by the middleware and the
// [slog.Logger] context aware methods. As not every use of the logger will be within the context of
// an HTTP request it needs to be ok with keys not being set in the [context.Context].
type ContextHandler struct {
	slog.Handler
}

func New(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

func (rh *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return rh.Handler.Enabled(ctx, level)
}

func (rh *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	// logs outside of an HTTP request, like the cluster seeding on start-up
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		r.AddAttrs(slog.String(middleware.RequestLoggerKeyCorrelationID, id))
	}

	// public routes like /health do not have a user in the context
	if user, ok := middleware.GetUser(ctx); ok {
		r.AddAttrs(slog.String(middleware.RequestLoggerKeyUser, user))
	}

	return rh.Handler.Handle(ctx, r)
}

func (rh *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(rh.Handler.WithAttrs(attrs))
}

func (rh *ContextHandler) WithGroup(name string) slog.Handler {
	return New(rh.Handler.WithGroup(name))
}

// NewLogger creates the application logger writing JSON to w. level is parsed like
// [slog.Level.UnmarshalText] does, e.g. "debug" or "WARN".
func NewLogger(w io.Writer, level string, pretty bool) (*slog.Logger, error) {
	var l slog.Level
	if level != "" {
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	opts := &PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{Level: l},
		PrettyPrint:    pretty,
	}
	return slog.New(New(NewPrettyJSONHandler(w, opts))), nil
}
