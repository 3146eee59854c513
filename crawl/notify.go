package crawl

import (
	"log/slog"

	"github.com/astelhq/astel"
)

// Notifier dispatches crawl lifecycle events to subscribed handlers.
// Dispatch is synchronous but isolated: a panicking handler is recovered
// and logged, never allowed to abort the worker that emitted the event.
type Notifier struct {
	logger   *slog.Logger
	request  []astel.RequestHandler
	response []astel.ResponseHandler
	errs     []astel.ErrorHandler
}

// NewNotifier creates a Notifier that reports handler panics to logger.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{logger: logger}
}

// OnRequest subscribes a handler to request-start events.
func (n *Notifier) OnRequest(h astel.RequestHandler) {
	n.request = append(n.request, h)
}

// OnResponse subscribes a handler to successful-response events.
func (n *Notifier) OnResponse(h astel.ResponseHandler) {
	n.response = append(n.response, h)
}

// OnError subscribes a handler to per-URL failure events.
func (n *Notifier) OnError(h astel.ErrorHandler) {
	n.errs = append(n.errs, h)
}

// EmitRequest dispatches a request event to all subscribers.
func (n *Notifier) EmitRequest(ev astel.RequestEvent) {
	for _, h := range n.request {
		n.dispatch("request", func() { h(ev) })
	}
}

// EmitResponse dispatches a response event to all subscribers.
func (n *Notifier) EmitResponse(ev astel.ResponseEvent) {
	for _, h := range n.response {
		n.dispatch("response", func() { h(ev) })
	}
}

// EmitError dispatches an error event to all subscribers.
func (n *Notifier) EmitError(ev astel.ErrorEvent) {
	for _, h := range n.errs {
		n.dispatch("error", func() { h(ev) })
	}
}

func (n *Notifier) dispatch(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("event handler panicked",
				"event", event,
				"panic", r,
			)
		}
	}()
	fn()
}
