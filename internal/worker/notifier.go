package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
)

// StartNotifier fans lifecycle events out to the notification log. This is
// the hook point for email or webhook delivery.
func StartNotifier(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	notify := func(ctx context.Context, event events.Event) error {
		logger.Info("notification",
			zap.String("event", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.String("trace_id", event.TraceID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketStatusChanged, notify)
	dispatcher.Subscribe(events.EventTicketReplyAdded, notify)
	dispatcher.Subscribe(events.EventTriageCompleted, notify)
}
