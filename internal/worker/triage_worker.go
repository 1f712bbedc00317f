package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
	"github.com/shubham7silyan/HelpDeskBackend/internal/queue"
)

// StartTriageWorker submits a triage job for every created ticket. The
// dispatcher decides whether the job runs queued or inline.
func StartTriageWorker(dispatcher events.Dispatcher, jobs queue.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || jobs == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		handle, err := jobs.Submit(ctx, event.TicketID, event.TraceID)
		if err != nil {
			logger.Error("triage submission failed",
				zap.String("ticket_id", event.TicketID),
				zap.String("trace_id", event.TraceID),
				zap.Error(err),
			)
			return err
		}
		logger.Info("triage submitted",
			zap.String("job_id", handle.ID),
			zap.String("ticket_id", event.TicketID),
			zap.String("trace_id", event.TraceID),
		)
		return nil
	})
}
