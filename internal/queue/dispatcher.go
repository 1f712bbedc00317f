// Package queue dispatches triage jobs. With a reachable Redis broker jobs
// run asynchronously under a bounded worker pool; without one they run
// inline in the submitting call. Callers never branch on the mode.
package queue

import (
	"context"

	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/config"
	"github.com/shubham7silyan/HelpDeskBackend/internal/persistence"
)

// Handle identifies a submitted job, usable for logging and correlation
// only; there is no status-polling contract.
type Handle struct {
	ID      string `json:"id"`
	TraceID string `json:"trace_id"`
}

// Stats reports dispatcher state for operational tooling.
type Stats struct {
	Enabled   bool   `json:"enabled"`
	Mode      string `json:"mode"`
	Waiting   int64  `json:"waiting"`
	Active    int64  `json:"active"`
	Completed int64  `json:"completed"`
	Failed    int64  `json:"failed"`
}

// Runner executes one triage attempt. Implemented by *triage.Engine.
type Runner interface {
	Run(ctx context.Context, ticketID, traceID string) error
}

// Dispatcher accepts triage requests.
type Dispatcher interface {
	Submit(ctx context.Context, ticketID, traceID string) (Handle, error)
	Stats(ctx context.Context) (Stats, error)
	// Enabled reports whether jobs currently run through the broker.
	Enabled() bool
}

// NewDispatcher picks the execution mode. A configured broker always gets
// the queued dispatcher, even when the first ping fails: its probe loop
// re-evaluates connectivity in both directions, and submissions run inline
// while the broker is unreachable, so no request is ever dropped. Inline
// mode is reserved for running without a broker at all.
func NewDispatcher(ctx context.Context, broker *persistence.Redis, runner Runner, cfg config.QueueConfig, logger *zap.Logger) Dispatcher {
	if broker == nil || broker.Client == nil {
		logger.Warn("no broker configured; triage dispatcher running in inline mode")
		return NewInlineDispatcher(runner, logger)
	}

	up := broker.Ping(ctx) == nil
	if up {
		logger.Info("triage dispatcher running in queued mode")
	} else {
		logger.Warn("broker unreachable; triage runs inline until it recovers")
	}
	return newRedisDispatcher(ctx, broker.Client, runner, cfg, up, logger)
}
