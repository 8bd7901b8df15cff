package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
	"github.com/workforcehq/hrms-backend-go/internal/domain/report"
)

// ReportServiceImpl generates finance reports from payroll and leave data
// and keeps them server-side so any finance user can reopen or export a
// past report.
type ReportServiceImpl struct {
	reportRepo      report.Repository
	runRepo         payroll.RunRepository
	entitlementRepo leave.EntitlementRepository
	typeRepo        leave.TypeRepository
}

func NewReportService(
	reportRepo report.Repository,
	runRepo payroll.RunRepository,
	entitlementRepo leave.EntitlementRepository,
	typeRepo leave.TypeRepository,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo:      reportRepo,
		runRepo:         runRepo,
		entitlementRepo: entitlementRepo,
		typeRepo:        typeRepo,
	}
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.GenerateRequest) (report.FinanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.FinanceReport{}, err
	}

	var (
		rep report.FinanceReport
		err error
	)
	switch report.ReportKind(req.Kind) {
	case report.KindPayrollSummary:
		rep, err = s.payrollSummary(ctx, req)
	case report.KindLeaveLiability:
		rep, err = s.leaveLiability(ctx, req)
	}
	if err != nil {
		return report.FinanceReport{}, err
	}

	rep.GeneratedBy = req.GeneratedBy

	stored, err := s.reportRepo.Store(ctx, rep)
	if err != nil {
		return report.FinanceReport{}, fmt.Errorf("failed to store report: %w", err)
	}

	return stored, nil
}

// payrollSummary lines up every run of the period with gross, tax and net
// totals plus a grand total row.
func (s *ReportServiceImpl) payrollSummary(ctx context.Context, req report.GenerateRequest) (report.FinanceReport, error) {
	filter := payroll.RunFilter{Year: &req.PeriodYear, Page: 1, Limit: 100}
	runs, _, err := s.runRepo.List(ctx, filter)
	if err != nil {
		return report.FinanceReport{}, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	var rows report.Rows
	gross, tax, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, run := range runs {
		if req.PeriodMonth != nil && run.PeriodMonth != *req.PeriodMonth {
			continue
		}
		rows = append(rows, report.Row{
			Label: fmt.Sprintf("%04d-%02d (%s)", run.PeriodYear, run.PeriodMonth, run.Status),
			Values: map[string]decimal.Decimal{
				"gross": run.GrossTotal,
				"tax":   run.TaxWithheld,
				"net":   run.NetTotal,
			},
		})
		gross = gross.Add(run.GrossTotal)
		tax = tax.Add(run.TaxWithheld)
		net = net.Add(run.NetTotal)
	}

	if len(rows) == 0 {
		return report.FinanceReport{}, report.ErrEmptyPeriod
	}

	rows = append(rows, report.Row{
		Label:  "Total",
		Values: map[string]decimal.Decimal{"gross": gross, "tax": tax, "net": net},
	})

	title := fmt.Sprintf("Payroll Summary %d", req.PeriodYear)
	if req.PeriodMonth != nil {
		title = fmt.Sprintf("Payroll Summary %04d-%02d", req.PeriodYear, *req.PeriodMonth)
	}

	return report.FinanceReport{
		Kind:        report.KindPayrollSummary,
		Title:       title,
		PeriodYear:  req.PeriodYear,
		PeriodMonth: req.PeriodMonth,
		Columns:     []string{"gross", "tax", "net"},
		Rows:        rows,
	}, nil
}

// leaveLiability sums outstanding leave balances per leave type for the
// period year.
func (s *ReportServiceImpl) leaveLiability(ctx context.Context, req report.GenerateRequest) (report.FinanceReport, error) {
	entitlements, err := s.entitlementRepo.ListByYear(ctx, req.PeriodYear)
	if err != nil {
		return report.FinanceReport{}, fmt.Errorf("failed to list entitlements: %w", err)
	}
	if len(entitlements) == 0 {
		return report.FinanceReport{}, report.ErrEmptyPeriod
	}

	type bucket struct {
		accrued   decimal.Decimal
		taken     decimal.Decimal
		remaining decimal.Decimal
	}
	byType := map[string]*bucket{}
	var order []string
	for _, ent := range entitlements {
		b, ok := byType[ent.LeaveTypeID]
		if !ok {
			b = &bucket{}
			byType[ent.LeaveTypeID] = b
			order = append(order, ent.LeaveTypeID)
		}
		b.accrued = b.accrued.Add(ent.AccruedRounded)
		b.taken = b.taken.Add(ent.Taken)
		b.remaining = b.remaining.Add(ent.Remaining())
	}

	var rows report.Rows
	for _, typeID := range order {
		label := typeID
		if lt, err := s.typeRepo.GetByID(ctx, typeID); err == nil {
			label = lt.Name
		}
		b := byType[typeID]
		rows = append(rows, report.Row{
			Label: label,
			Values: map[string]decimal.Decimal{
				"accrued":   b.accrued,
				"taken":     b.taken,
				"remaining": b.remaining,
			},
		})
	}

	return report.FinanceReport{
		Kind:       report.KindLeaveLiability,
		Title:      fmt.Sprintf("Leave Liability %d", req.PeriodYear),
		PeriodYear: req.PeriodYear,
		Columns:    []string{"accrued", "taken", "remaining"},
		Rows:       rows,
	}, nil
}

// Get implements report.ReportService.
func (s *ReportServiceImpl) Get(ctx context.Context, id string) (report.FinanceReport, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// List implements report.ReportService.
func (s *ReportServiceImpl) List(ctx context.Context) ([]report.FinanceReport, error) {
	return s.reportRepo.List(ctx)
}

// Delete implements report.ReportService.
func (s *ReportServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.reportRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reportRepo.Delete(ctx, id)
}
