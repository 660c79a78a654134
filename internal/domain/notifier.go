package domain

import (
	"context"
	"time"

	m "github.com/mouse-blink/gorald/internal/model"
)

// EventHandler consumes pipeline events. Handle is called synchronously on
// the pipeline goroutine and must return promptly.
type EventHandler interface {
	Handle(ctx context.Context, event m.Event)
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event m.Event)

// Handle calls f.
func (f EventHandlerFunc) Handle(ctx context.Context, event m.Event) {
	f(ctx, event)
}

// Notifier fans events out to its handlers in subscription order.
// A nil Notifier drops every event.
type Notifier struct {
	handlers []EventHandler
	now      func() time.Time
}

// NewNotifier creates a notifier with the given handlers.
func NewNotifier(handlers ...EventHandler) *Notifier {
	return &Notifier{handlers: handlers, now: time.Now}
}

// Subscribe adds a handler.
func (n *Notifier) Subscribe(h EventHandler) {
	n.handlers = append(n.handlers, h)
}

// HasObservers reports whether any handler is subscribed.
func (n *Notifier) HasObservers() bool {
	return n != nil && len(n.handlers) > 0
}

// Fire stamps the event with the current time when unset and delivers it.
func (n *Notifier) Fire(ctx context.Context, event m.Event) {
	if n == nil {
		return
	}

	if event.Time.IsZero() {
		event.Time = n.now()
	}

	for _, h := range n.handlers {
		h.Handle(ctx, event)
	}
}
