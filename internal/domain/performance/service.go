package performance

import "context"

type PerformanceService interface {
	GetAppraisal(ctx context.Context, id string) (Appraisal, error)
	ListAppraisals(ctx context.Context, employeeID string) ([]Appraisal, error)
	FileDispute(ctx context.Context, req FileDisputeRequest) (Dispute, error)
	TakeDispute(ctx context.Context, disputeID, assigneeID string) error
	ResolveDispute(ctx context.Context, req ResolveDisputeRequest, assigneeID string) error
	ListDisputes(ctx context.Context, filter DisputeFilter) ([]Dispute, int64, error)
	GetDispute(ctx context.Context, id string) (Dispute, error)
}
