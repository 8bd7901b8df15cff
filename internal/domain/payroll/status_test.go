package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    RunStatus
		to      RunStatus
		allowed bool
	}{
		{"draft can be submitted", StatusDraft, StatusPendingApproval, true},
		{"draft cannot be approved directly", StatusDraft, StatusApproved, false},
		{"draft cannot be locked", StatusDraft, StatusLocked, false},
		{"pending can be approved", StatusPendingApproval, StatusApproved, true},
		{"pending can be rejected", StatusPendingApproval, StatusRejected, true},
		{"pending cannot be locked", StatusPendingApproval, StatusLocked, false},
		{"approved can be locked", StatusApproved, StatusLocked, true},
		{"approved cannot be rejected", StatusApproved, StatusRejected, false},
		{"rejected can be resubmitted", StatusRejected, StatusPendingApproval, true},
		{"locked is terminal", StatusLocked, StatusPendingApproval, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestRunStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusLocked.IsTerminal())
	assert.False(t, StatusDraft.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("draft"))
	assert.True(t, IsValidStatus("pending_finance_approval"))
	assert.False(t, IsValidStatus("done"))
}
