package report

import "context"

type ReportService interface {
	Generate(ctx context.Context, req GenerateRequest) (FinanceReport, error)
	Get(ctx context.Context, id string) (FinanceReport, error)
	List(ctx context.Context) ([]FinanceReport, error)
	Delete(ctx context.Context, id string) error
	ExportCSV(ctx context.Context, id string) ([]byte, error)
	ExportPDF(ctx context.Context, id string) ([]byte, error)
}
