package performance

import "context"

// AppraisalRepository - interface for the appraisals table
type AppraisalRepository interface {
	GetByID(ctx context.Context, id string) (Appraisal, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Appraisal, error)
	ListByPeriod(ctx context.Context, period string) ([]Appraisal, error)
}

// DisputeRepository - interface for the appraisal_disputes table
type DisputeRepository interface {
	Create(ctx context.Context, dispute Dispute) (Dispute, error)
	GetByID(ctx context.Context, id string) (Dispute, error)
	List(ctx context.Context, filter DisputeFilter) ([]Dispute, int64, error)
	UpdateStatus(ctx context.Context, dispute Dispute) error
}
