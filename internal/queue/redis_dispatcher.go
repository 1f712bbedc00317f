package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/config"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

const (
	pendingKey   = "triage:pending"
	delayedKey   = "triage:delayed"
	completedKey = "triage:stats:completed"
	failedKey    = "triage:stats:failed"

	moveInterval = 250 * time.Millisecond
	popTimeout   = time.Second
)

// job is the durable payload stored in the broker.
type job struct {
	ID       string `json:"id"`
	TicketID string `json:"ticket_id"`
	TraceID  string `json:"trace_id"`
}

// redisDispatcher schedules jobs on a delayed zset, promotes due jobs onto
// a pending list, and drains it with a fixed-size worker pool.
type redisDispatcher struct {
	client    *redis.Client
	runner    Runner
	cfg       config.QueueConfig
	logger    *zap.Logger
	active    atomic.Int64
	connected atomic.Bool
}

func newRedisDispatcher(ctx context.Context, client *redis.Client, runner Runner, cfg config.QueueConfig, connected bool, logger *zap.Logger) *redisDispatcher {
	d := &redisDispatcher{
		client: client,
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
	d.connected.Store(connected)

	go d.probeLoop(ctx)
	go d.moveLoop(ctx)
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	for i := 0; i < concurrency; i++ {
		go d.workerLoop(ctx, i)
	}
	return d
}

// Submit enqueues a durable job with a short settle delay. While the broker
// is unreachable the job runs inline instead; submissions are never dropped.
func (d *redisDispatcher) Submit(ctx context.Context, ticketID, traceID string) (Handle, error) {
	j := job{
		ID:       fmt.Sprintf("triage-%s-%d", ticketID, time.Now().UnixMilli()),
		TicketID: ticketID,
		TraceID:  traceID,
	}
	handle := Handle{ID: j.ID, TraceID: traceID}

	if !d.connected.Load() {
		return d.runInline(ctx, handle, ticketID, traceID)
	}

	payload, err := json.Marshal(j)
	if err != nil {
		return handle, err
	}
	readyAt := time.Now().Add(d.cfg.EnqueueDelay())
	if err := d.client.ZAdd(ctx, delayedKey, redis.Z{
		Score:  float64(readyAt.UnixMilli()),
		Member: payload,
	}).Err(); err != nil {
		d.logger.Warn("enqueue failed; running triage inline", zap.String("ticket_id", ticketID), zap.Error(err))
		d.connected.Store(false)
		return d.runInline(ctx, handle, ticketID, traceID)
	}

	d.logger.Info("triage job enqueued",
		zap.String("job_id", j.ID),
		zap.String("ticket_id", ticketID),
		zap.String("trace_id", traceID),
	)
	return handle, nil
}

func (d *redisDispatcher) runInline(ctx context.Context, handle Handle, ticketID, traceID string) (Handle, error) {
	if err := d.runner.Run(ctx, ticketID, traceID); err != nil {
		return handle, err
	}
	return handle, nil
}

// Stats reports queue depth and lifetime outcome counters. During an
// outage the broker cannot be queried, so stats mirror inline execution.
func (d *redisDispatcher) Stats(ctx context.Context) (Stats, error) {
	if !d.connected.Load() {
		return Stats{Enabled: false, Mode: "inline"}, nil
	}
	pending, err := d.client.LLen(ctx, pendingKey).Result()
	if err != nil {
		return Stats{}, util.NewTransient("queue stats", err)
	}
	delayed, err := d.client.ZCard(ctx, delayedKey).Result()
	if err != nil {
		return Stats{}, util.NewTransient("queue stats", err)
	}
	completed, err := counterValue(ctx, d.client, completedKey)
	if err != nil {
		return Stats{}, err
	}
	failed, err := counterValue(ctx, d.client, failedKey)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Enabled:   d.connected.Load(),
		Mode:      "queued",
		Waiting:   pending + delayed,
		Active:    d.active.Load(),
		Completed: completed,
		Failed:    failed,
	}, nil
}

// Enabled reports whether the broker is currently reachable.
func (d *redisDispatcher) Enabled() bool {
	return d.connected.Load()
}

// probeLoop re-evaluates broker connectivity so the mode flag tracks
// outages and recoveries.
func (d *redisDispatcher) probeLoop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.ProbeInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			up := d.client.Ping(ctx).Err() == nil
			if up != d.connected.Swap(up) {
				if up {
					d.logger.Info("broker reachable again; resuming queued mode")
				} else {
					d.logger.Warn("broker unreachable; falling back to inline triage")
				}
			}
		}
	}
}

// moveLoop promotes due delayed jobs onto the pending list.
func (d *redisDispatcher) moveLoop(ctx context.Context) {
	ticker := time.NewTicker(moveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !d.connected.Load() {
				continue
			}
			if err := d.moveDue(ctx); err != nil && ctx.Err() == nil {
				d.logger.Warn("failed to promote delayed jobs", zap.Error(err))
			}
		}
	}
}

func (d *redisDispatcher) moveDue(ctx context.Context) error {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	due, err := d.client.ZRangeByScore(ctx, delayedKey, &redis.ZRangeBy{
		Min: "-inf", Max: now, Count: 100,
	}).Result()
	if err != nil || len(due) == 0 {
		return err
	}

	pipe := d.client.TxPipeline()
	for _, member := range due {
		pipe.LPush(ctx, pendingKey, member)
		pipe.ZRem(ctx, delayedKey, member)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// workerLoop pulls jobs and runs them under the bounded retry policy.
func (d *redisDispatcher) workerLoop(ctx context.Context, id int) {
	for {
		if ctx.Err() != nil {
			return
		}
		if !d.connected.Load() {
			time.Sleep(popTimeout)
			continue
		}

		result, err := d.client.BRPop(ctx, popTimeout, pendingKey).Result()
		if err != nil {
			if err != redis.Nil && ctx.Err() == nil {
				d.logger.Warn("queue pop failed", zap.Int("worker", id), zap.Error(err))
				time.Sleep(popTimeout)
			}
			continue
		}
		// BRPop returns [key, value].
		if len(result) != 2 {
			continue
		}

		var j job
		if err := json.Unmarshal([]byte(result[1]), &j); err != nil {
			d.logger.Error("dropping malformed job payload", zap.Error(err))
			continue
		}
		d.process(ctx, j)
	}
}

// process runs one job with at-least-once semantics: up to MaxAttempts
// total attempts with exponential backoff, then the job is recorded as
// failed and not retried further.
func (d *redisDispatcher) process(ctx context.Context, j job) {
	d.active.Add(1)
	defer d.active.Add(-1)

	d.logger.Info("processing triage job",
		zap.String("job_id", j.ID),
		zap.String("ticket_id", j.TicketID),
		zap.String("trace_id", j.TraceID),
	)

	err := runJobWithRetry(ctx, d.runner, j, d.cfg.BackoffInitial(), d.cfg.MaxAttempts)

	if err != nil {
		d.logger.Error("triage job failed",
			zap.String("job_id", j.ID),
			zap.String("ticket_id", j.TicketID),
			zap.Error(err),
		)
		if incrErr := d.client.Incr(ctx, failedKey).Err(); incrErr != nil && ctx.Err() == nil {
			d.logger.Warn("failed to record job failure", zap.Error(incrErr))
		}
		return
	}

	d.logger.Info("triage job completed", zap.String("job_id", j.ID), zap.String("ticket_id", j.TicketID))
	if incrErr := d.client.Incr(ctx, completedKey).Err(); incrErr != nil && ctx.Err() == nil {
		d.logger.Warn("failed to record job completion", zap.Error(incrErr))
	}
}

// runJobWithRetry executes one job under the bounded retry policy:
// maxAttempts total attempts with exponential backoff from initial.
// Errors that cannot succeed on a retry (missing ticket, rejected input)
// stop the job immediately.
func runJobWithRetry(ctx context.Context, runner Runner, j job, initial time.Duration, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	operation := func() error {
		err := runner.Run(ctx, j.TicketID, j.TraceID)
		if err == nil {
			return nil
		}
		if util.IsNotFound(err) || util.IsValidation(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(initial),
	)
	return backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(maxAttempts-1)), ctx))
}

func counterValue(ctx context.Context, client *redis.Client, key string) (int64, error) {
	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, util.NewTransient("queue stats", err)
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
