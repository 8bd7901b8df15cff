package payroll

import "context"

type PayrollService interface {
	ListRuns(ctx context.Context, filter RunFilter) ([]PayrollRun, int64, error)
	GetRun(ctx context.Context, id string) (PayrollRun, error)
	SubmitForApproval(ctx context.Context, runID, userID string) error
	ApproveRun(ctx context.Context, runID, userID string) error
	RejectRun(ctx context.Context, req RejectRunRequest, userID string) error
	LockRun(ctx context.Context, runID, userID string) error
	ListPayslips(ctx context.Context, runID string) ([]Payslip, error)
	MyPayslips(ctx context.Context, employeeID string, year int) ([]Payslip, error)
	PayslipPDF(ctx context.Context, payslipID string) ([]byte, error)
}
