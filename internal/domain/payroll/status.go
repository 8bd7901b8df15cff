package payroll

// RunStatus is the lifecycle state of a payroll run. Every mutation consults
// the transitions table below instead of comparing status strings ad hoc.
type RunStatus string

const (
	StatusDraft           RunStatus = "draft"
	StatusPendingApproval RunStatus = "pending_finance_approval"
	StatusApproved        RunStatus = "approved"
	StatusRejected        RunStatus = "rejected"
	StatusLocked          RunStatus = "locked"
)

// transitions is the single source of truth for allowed status changes.
var transitions = map[RunStatus][]RunStatus{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusLocked},
	StatusRejected:        {StatusPendingApproval},
	StatusLocked:          {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to RunStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves the status.
func (s RunStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func IsValidStatus(s string) bool {
	_, ok := transitions[RunStatus(s)]
	return ok
}
