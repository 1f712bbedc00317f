package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
	"github.com/shubham7silyan/HelpDeskBackend/internal/queue"
)

type stubJobs struct {
	submissions [][2]string
}

func (s *stubJobs) Submit(_ context.Context, ticketID, traceID string) (queue.Handle, error) {
	s.submissions = append(s.submissions, [2]string{ticketID, traceID})
	return queue.Handle{ID: "job-1", TraceID: traceID}, nil
}

func (s *stubJobs) Stats(context.Context) (queue.Stats, error) { return queue.Stats{}, nil }
func (s *stubJobs) Enabled() bool                              { return true }

func TestTriageWorkerSubmitsOnTicketCreated(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	jobs := &stubJobs{}
	StartTriageWorker(dispatcher, jobs, zap.NewNop())

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: "t1",
		TraceID:  "trace-1",
	})
	require.NoError(t, err)
	require.Len(t, jobs.submissions, 1)
	assert.Equal(t, [2]string{"t1", "trace-1"}, jobs.submissions[0])
}

func TestTriageWorkerIgnoresOtherEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	jobs := &stubJobs{}
	StartTriageWorker(dispatcher, jobs, zap.NewNop())

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: "t1",
	})
	require.NoError(t, err)
	assert.Empty(t, jobs.submissions)
}
