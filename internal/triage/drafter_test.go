package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftReplyWithEntries(t *testing.T) {
	draft := draftReply("Broken login", []RetrievedArticle{
		{ID: "a1", Title: "Resetting your password", Snippet: "Go to settings."},
		{ID: "a2", Title: "Login troubleshooting", Snippet: "Clear your cookies."},
	})

	require.Len(t, draft.Citations, 2)
	assert.Equal(t, "[1] Resetting your password", draft.Citations[0])
	assert.Equal(t, "[2] Login troubleshooting", draft.Citations[1])

	assert.Contains(t, draft.Reply, `"Broken login"`)
	assert.Contains(t, draft.Reply, "1. **Resetting your password**")
	assert.Contains(t, draft.Reply, "2. **Login troubleshooting**")
	assert.Contains(t, draft.Reply, "Go to settings.")
	assert.Contains(t, draft.Reply, "Smart Helpdesk AI Assistant")

	// Numbered references and citations stay in lockstep.
	assert.Equal(t, len(draft.Citations), strings.Count(draft.Reply, "**")/2)
}

func TestDraftReplyWithoutEntries(t *testing.T) {
	draft := draftReply("Strange request", nil)

	assert.Empty(t, draft.Citations)
	assert.Contains(t, draft.Reply, "wasn't able to find specific documentation")
	assert.Contains(t, draft.Reply, "human agent")
	assert.NotContains(t, draft.Reply, "[1]")
}
