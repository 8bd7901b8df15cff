package report

import "context"

// Repository - interface for the finance_reports table
type Repository interface {
	Store(ctx context.Context, report FinanceReport) (FinanceReport, error)
	GetByID(ctx context.Context, id string) (FinanceReport, error)
	List(ctx context.Context) ([]FinanceReport, error)
	Delete(ctx context.Context, id string) error
}
