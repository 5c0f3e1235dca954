// Package mail hands a composed order message to whatever mail-capable
// handler is configured.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/just-java/internal/metrics"
)

// ErrNoHandler is returned when no configured handler accepted the message.
var ErrNoHandler = errors.New("no mail handler available")

// Message is an order mail: recipients are optional for handlers that let
// the user pick them.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Receipt describes how a message was handed off.
type Receipt struct {
	Handler string `json:"handler"`
	// URI is set when the client has to open a link to finish the handoff.
	URI string `json:"uri,omitempty"`
}

// Handler delivers or hands off a Message.
type Handler interface {
	Name() string
	Send(ctx context.Context, msg Message) (*Receipt, error)
}

// Dispatcher tries its handlers in order and returns the first success.
type Dispatcher struct {
	handlers []Handler
	log      *slog.Logger
}

// NewDispatcher creates a dispatcher over handlers, tried in the given order.
func NewDispatcher(log *slog.Logger, handlers ...Handler) *Dispatcher {
	return &Dispatcher{
		handlers: handlers,
		log:      log,
	}
}

// Handlers returns the names of the configured handlers.
func (d *Dispatcher) Handlers() []string {
	names := make([]string, len(d.handlers))
	for i, h := range d.handlers {
		names[i] = h.Name()
	}
	return names
}

// Dispatch hands msg to the first handler that accepts it. When none is
// configured or every handler fails, the error wraps ErrNoHandler.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (*Receipt, error) {
	if len(d.handlers) == 0 {
		return nil, ErrNoHandler
	}

	var errs []error
	for _, h := range d.handlers {
		receipt, err := h.Send(ctx, msg)
		metrics.ObserveMailDispatch(h.Name(), err)
		if err != nil {
			d.log.WarnContext(ctx, "mail handler failed",
				slog.String("handler", h.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", h.Name(), err))
			continue
		}

		d.log.InfoContext(ctx, "order mail handed off",
			slog.String("handler", receipt.Handler),
			slog.String("subject", msg.Subject),
		)
		return receipt, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrNoHandler, errors.Join(errs...))
}
