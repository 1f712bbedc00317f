package queue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/config"
	"github.com/shubham7silyan/HelpDeskBackend/internal/persistence"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// unreachableBroker wraps a client pointed at a closed port so every ping
// and command fails fast.
func unreachableBroker(t *testing.T) *persistence.Redis {
	t.Helper()
	broker := &persistence.Redis{Client: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})}
	t.Cleanup(broker.Close)
	return broker
}

func TestNewDispatcherKeepsProbingWhenBrokerDownAtBoot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := &recordingRunner{}

	dispatcher := NewDispatcher(ctx, unreachableBroker(t), runner, config.QueueConfig{ProbeIntervalSec: 1}, zap.NewNop())

	// A boot-time outage must not lock the service out of queued mode: the
	// probing dispatcher is constructed regardless, starting disconnected.
	_, ok := dispatcher.(*redisDispatcher)
	require.True(t, ok)
	assert.False(t, dispatcher.Enabled())

	// Submissions during the outage run inline and are never dropped.
	handle, err := dispatcher.Submit(ctx, "t1", "trace-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1|trace-1"}, runner.calls)
	assert.True(t, strings.HasPrefix(handle.ID, "triage-t1-"))

	stats, err := dispatcher.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.Enabled)
	assert.Equal(t, "inline", stats.Mode)
}

func TestNewDispatcherInlineWithoutBroker(t *testing.T) {
	dispatcher := NewDispatcher(context.Background(), nil, &recordingRunner{}, config.QueueConfig{}, zap.NewNop())

	_, ok := dispatcher.(*InlineDispatcher)
	assert.True(t, ok)
	assert.False(t, dispatcher.Enabled())
}

type countingRunner struct {
	attempts  int
	err       error
	succeedOn int
}

func (r *countingRunner) Run(context.Context, string, string) error {
	r.attempts++
	if r.succeedOn > 0 && r.attempts >= r.succeedOn {
		return nil
	}
	return r.err
}

func TestRetryPolicyRetriesTransientFailures(t *testing.T) {
	runner := &countingRunner{err: util.NewTransient("load ticket", errors.New("connection refused"))}

	err := runJobWithRetry(context.Background(), runner, job{TicketID: "t1", TraceID: "trace-1"}, time.Millisecond, 3)
	require.Error(t, err)
	assert.Equal(t, 3, runner.attempts)
}

func TestRetryPolicyStopsOnPermanentFailures(t *testing.T) {
	cases := map[string]error{
		"missing ticket": util.NewNotFound("ticket", nil),
		"rejected input": util.NewValidationError("bad ticket", nil),
	}
	for name, cause := range cases {
		t.Run(name, func(t *testing.T) {
			runner := &countingRunner{err: cause}

			err := runJobWithRetry(context.Background(), runner, job{TicketID: "t1", TraceID: "trace-1"}, time.Millisecond, 3)
			require.Error(t, err)
			assert.Equal(t, 1, runner.attempts)
		})
	}
}

func TestRetryPolicySucceedsMidway(t *testing.T) {
	runner := &countingRunner{err: errors.New("flaky"), succeedOn: 2}

	err := runJobWithRetry(context.Background(), runner, job{TicketID: "t1", TraceID: "trace-1"}, time.Millisecond, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, runner.attempts)
}
