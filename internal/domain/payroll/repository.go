package payroll

import "context"

// RunRepository - interface for the payroll_runs table
type RunRepository interface {
	GetByID(ctx context.Context, id string) (PayrollRun, error)
	List(ctx context.Context, filter RunFilter) ([]PayrollRun, int64, error)
	UpdateStatus(ctx context.Context, run PayrollRun) error
}

// PayslipRepository - interface for the payslips table
type PayslipRepository interface {
	GetByID(ctx context.Context, id string) (Payslip, error)
	ListByRun(ctx context.Context, runID string) ([]Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Payslip, error)
}
