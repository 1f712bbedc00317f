package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

type stubAuditRepo struct {
	events    []domain.AuditEvent
	appendErr error
}

func (s *stubAuditRepo) Append(_ context.Context, event *domain.AuditEvent) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	event.ID = "evt"
	event.Timestamp = time.Now()
	s.events = append(s.events, *event)
	return nil
}

func (s *stubAuditRepo) ListByTicket(context.Context, string, int, int) ([]domain.AuditEvent, int, error) {
	return s.events, len(s.events), nil
}

func (s *stubAuditRepo) ListByTrace(context.Context, string) ([]domain.AuditEvent, error) {
	return s.events, nil
}

func (s *stubAuditRepo) StreamRange(_ context.Context, _, _ *time.Time, fn func(domain.AuditEvent) error) error {
	for _, event := range s.events {
		if err := fn(event); err != nil {
			return err
		}
	}
	return nil
}

func TestRecordSwallowsAppendFailures(t *testing.T) {
	repo := &stubAuditRepo{appendErr: errors.New("db down")}
	trail := NewTrail(repo, zap.NewNop())

	// Must not panic or surface the failure.
	trail.Record(context.Background(), "t1", "trace-1", domain.ActorSystem, domain.ActionAgentClassified, nil, nil)
	assert.Empty(t, repo.events)
}

func TestRecordDefaultsMeta(t *testing.T) {
	repo := &stubAuditRepo{}
	trail := NewTrail(repo, zap.NewNop())

	trail.Record(context.Background(), "t1", "trace-1", domain.ActorUser, domain.ActionTicketCreated, nil, nil)
	require.Len(t, repo.events, 1)
	assert.NotNil(t, repo.events[0].Meta)
}

func TestExportNDJSON(t *testing.T) {
	repo := &stubAuditRepo{}
	trail := NewTrail(repo, zap.NewNop())
	trail.Record(context.Background(), "t1", "trace-1", domain.ActorSystem, domain.ActionKBRetrieved, map[string]any{"articles_found": 2}, nil)
	trail.Record(context.Background(), "t1", "trace-1", domain.ActorSystem, domain.ActionDraftGenerated, map[string]any{"draft_length": 120}, nil)

	var buf bytes.Buffer
	require.NoError(t, trail.ExportNDJSON(context.Background(), &buf, nil, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var event domain.AuditEvent
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		assert.Equal(t, "t1", event.TicketID)
	}
}
