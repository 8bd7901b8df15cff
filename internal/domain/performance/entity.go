package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appraisal is a finished performance review outcome an employee may dispute.
type Appraisal struct {
	ID          string
	EmployeeID  string
	Period      string // e.g. "2026-H1"
	Score       decimal.Decimal
	Rating      string
	ReviewerID  string
	Comments    *string
	FinalizedAt time.Time
	CreatedAt   time.Time

	// Joined fields
	EmployeeName *string
}

// DisputeStatus lifecycle: open -> under_review -> resolved | rejected.
type DisputeStatus string

const (
	DisputeOpen        DisputeStatus = "open"
	DisputeUnderReview DisputeStatus = "under_review"
	DisputeResolved    DisputeStatus = "resolved"
	DisputeRejected    DisputeStatus = "rejected"
)

var disputeTransitions = map[DisputeStatus][]DisputeStatus{
	DisputeOpen:        {DisputeUnderReview},
	DisputeUnderReview: {DisputeResolved, DisputeRejected},
	DisputeResolved:    {},
	DisputeRejected:    {},
}

// CanTransition reports whether a dispute may move between the two statuses.
func CanTransition(from, to DisputeStatus) bool {
	for _, next := range disputeTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Dispute is an employee-initiated challenge to an appraisal outcome.
type Dispute struct {
	ID          string
	AppraisalID string
	EmployeeID  string
	Grounds     string
	Status      DisputeStatus
	AssigneeID  *string
	Resolution  *string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName    *string
	AppraisalPeriod *string
}
