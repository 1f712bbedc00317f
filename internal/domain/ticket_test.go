package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	allowed := []struct{ from, to TicketStatus }{
		{TicketStatusOpen, TicketStatusTriaged},
		{TicketStatusOpen, TicketStatusClosed},
		{TicketStatusTriaged, TicketStatusResolved},
		{TicketStatusTriaged, TicketStatusWaitingHuman},
		{TicketStatusWaitingHuman, TicketStatusResolved},
		{TicketStatusWaitingHuman, TicketStatusClosed},
		{TicketStatusResolved, TicketStatusClosed},
		{TicketStatusResolved, TicketStatusOpen},
		{TicketStatusClosed, TicketStatusOpen},
	}
	for _, tc := range allowed {
		assert.True(t, ValidTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to TicketStatus }{
		{TicketStatusOpen, TicketStatusResolved},
		{TicketStatusOpen, TicketStatusWaitingHuman},
		{TicketStatusClosed, TicketStatusResolved},
		{TicketStatusResolved, TicketStatusWaitingHuman},
		{TicketStatusWaitingHuman, TicketStatusOpen},
	}
	for _, tc := range denied {
		assert.False(t, ValidTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range Categories() {
		assert.True(t, ValidCategory(category))
	}
	assert.False(t, ValidCategory("spam"))
	assert.False(t, ValidCategory(""))
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleAgent.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RoleUser.IsStaff())
}
