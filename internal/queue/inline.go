package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// InlineDispatcher runs the pipeline synchronously within the submission
// call. Slower for the caller, but tickets still get triaged and failures
// surface directly instead of being dropped.
type InlineDispatcher struct {
	runner Runner
	logger *zap.Logger
}

// NewInlineDispatcher constructs the synchronous fallback.
func NewInlineDispatcher(runner Runner, logger *zap.Logger) *InlineDispatcher {
	return &InlineDispatcher{runner: runner, logger: logger}
}

// Submit executes the full pipeline before returning; a pipeline error is
// returned to the caller as-is.
func (d *InlineDispatcher) Submit(ctx context.Context, ticketID, traceID string) (Handle, error) {
	handle := Handle{
		ID:      fmt.Sprintf("inline-%s-%d", ticketID, time.Now().UnixMilli()),
		TraceID: traceID,
	}
	d.logger.Debug("running triage inline", zap.String("ticket_id", ticketID), zap.String("trace_id", traceID))
	if err := d.runner.Run(ctx, ticketID, traceID); err != nil {
		return handle, err
	}
	return handle, nil
}

// Stats reports zeros with the enabled marker false.
func (d *InlineDispatcher) Stats(_ context.Context) (Stats, error) {
	return Stats{Enabled: false, Mode: "inline"}, nil
}

// Enabled always reports false for inline execution.
func (d *InlineDispatcher) Enabled() bool {
	return false
}
