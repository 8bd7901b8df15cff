package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
	"github.com/workforcehq/hrms-backend-go/internal/domain/report"
)

type mockReportRepo struct {
	reports map[string]report.FinanceReport
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{reports: make(map[string]report.FinanceReport)}
}

func (m *mockReportRepo) Store(_ context.Context, rep report.FinanceReport) (report.FinanceReport, error) {
	rep.ID = fmt.Sprintf("report-%d", len(m.reports)+1)
	m.reports[rep.ID] = rep
	return rep, nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id string) (report.FinanceReport, error) {
	rep, ok := m.reports[id]
	if !ok {
		return report.FinanceReport{}, report.ErrReportNotFound
	}
	return rep, nil
}

func (m *mockReportRepo) List(_ context.Context) ([]report.FinanceReport, error) {
	out := make([]report.FinanceReport, 0, len(m.reports))
	for _, rep := range m.reports {
		out = append(out, rep)
	}
	return out, nil
}

func (m *mockReportRepo) Delete(_ context.Context, id string) error {
	delete(m.reports, id)
	return nil
}

// The embedded interfaces panic on any call the tests do not stub, which
// keeps these mocks limited to what report generation actually touches.

type mockRunRepo struct {
	payroll.RunRepository
	runs []payroll.PayrollRun
}

func (m *mockRunRepo) List(_ context.Context, filter payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	var out []payroll.PayrollRun
	for _, r := range m.runs {
		if filter.Year != nil && r.PeriodYear != *filter.Year {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

type mockEntitlementRepo struct {
	leave.EntitlementRepository
	entitlements []leave.Entitlement
}

func (m *mockEntitlementRepo) ListByYear(_ context.Context, year int) ([]leave.Entitlement, error) {
	var out []leave.Entitlement
	for _, e := range m.entitlements {
		if e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockTypeRepo struct {
	leave.TypeRepository
	types map[string]leave.LeaveType
}

func (m *mockTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	t, ok := m.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrTypeNotFound
	}
	return t, nil
}

func newReportFixture() (*ReportServiceImpl, *mockReportRepo, *mockRunRepo, *mockEntitlementRepo) {
	reportRepo := newMockReportRepo()
	runRepo := &mockRunRepo{}
	entitlementRepo := &mockEntitlementRepo{}
	typeRepo := &mockTypeRepo{types: map[string]leave.LeaveType{
		"type-1": {ID: "type-1", Name: "Annual Leave"},
	}}
	return NewReportService(reportRepo, runRepo, entitlementRepo, typeRepo), reportRepo, runRepo, entitlementRepo
}

func TestGenerate_PayrollSummaryTotalsRuns(t *testing.T) {
	svc, _, runRepo, _ := newReportFixture()
	runRepo.runs = []payroll.PayrollRun{
		{
			ID: "run-1", PeriodYear: 2026, PeriodMonth: 1, Status: payroll.StatusLocked,
			GrossTotal:  decimal.RequireFromString("10000"),
			TaxWithheld: decimal.RequireFromString("1500"),
			NetTotal:    decimal.RequireFromString("8500"),
		},
		{
			ID: "run-2", PeriodYear: 2026, PeriodMonth: 2, Status: payroll.StatusApproved,
			GrossTotal:  decimal.RequireFromString("11000"),
			TaxWithheld: decimal.RequireFromString("1650"),
			NetTotal:    decimal.RequireFromString("9350"),
		},
	}

	rep, err := svc.Generate(context.Background(), report.GenerateRequest{
		Kind:        "payroll_summary",
		PeriodYear:  2026,
		GeneratedBy: "finance-1",
	})

	require.NoError(t, err)
	assert.Equal(t, report.KindPayrollSummary, rep.Kind)
	assert.Equal(t, "finance-1", rep.GeneratedBy)
	require.Len(t, rep.Rows, 3)

	total := rep.Rows[2]
	assert.Equal(t, "Total", total.Label)
	assert.True(t, total.Values["gross"].Equal(decimal.RequireFromString("21000")))
	assert.True(t, total.Values["net"].Equal(decimal.RequireFromString("17850")))
}

func TestGenerate_EmptyPeriodRefused(t *testing.T) {
	svc, reportRepo, _, _ := newReportFixture()

	_, err := svc.Generate(context.Background(), report.GenerateRequest{
		Kind:       "payroll_summary",
		PeriodYear: 2019,
	})

	assert.ErrorIs(t, err, report.ErrEmptyPeriod)
	assert.Empty(t, reportRepo.reports)
}

func TestGenerate_LeaveLiabilityGroupsByType(t *testing.T) {
	svc, _, _, entitlementRepo := newReportFixture()
	entitlementRepo.entitlements = []leave.Entitlement{
		{
			EmployeeID: "emp-1", LeaveTypeID: "type-1", Year: 2026,
			AccruedRounded: decimal.RequireFromString("12"),
			Taken:          decimal.RequireFromString("4"),
		},
		{
			EmployeeID: "emp-2", LeaveTypeID: "type-1", Year: 2026,
			AccruedRounded: decimal.RequireFromString("10"),
			Taken:          decimal.RequireFromString("1"),
			Pending:        decimal.RequireFromString("2"),
		},
	}

	rep, err := svc.Generate(context.Background(), report.GenerateRequest{
		Kind:       "leave_liability",
		PeriodYear: 2026,
	})

	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	row := rep.Rows[0]
	assert.Equal(t, "Annual Leave", row.Label)
	assert.True(t, row.Values["accrued"].Equal(decimal.RequireFromString("22")))
	assert.True(t, row.Values["taken"].Equal(decimal.RequireFromString("5")))
	assert.True(t, row.Values["remaining"].Equal(decimal.RequireFromString("15")))
}

func TestExportCSV_LabelColumnFirst(t *testing.T) {
	svc, reportRepo, _, _ := newReportFixture()
	reportRepo.reports["report-1"] = report.FinanceReport{
		ID:      "report-1",
		Title:   "Payroll Summary 2026",
		Columns: []string{"gross", "net"},
		Rows: report.Rows{
			{Label: "2026-01", Values: map[string]decimal.Decimal{
				"gross": decimal.RequireFromString("10000"),
				"net":   decimal.RequireFromString("8500"),
			}},
		},
	}

	out, err := svc.ExportCSV(context.Background(), "report-1")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"label", "gross", "net"}, records[0])
	assert.Equal(t, []string{"2026-01", "10000.00", "8500.00"}, records[1])
}

func TestExportPDF_RendersDocument(t *testing.T) {
	svc, reportRepo, _, _ := newReportFixture()
	reportRepo.reports["report-1"] = report.FinanceReport{
		ID:      "report-1",
		Title:   "Leave Liability 2026",
		Columns: []string{"accrued", "taken", "remaining"},
		Rows: report.Rows{
			{Label: "Annual Leave", Values: map[string]decimal.Decimal{
				"accrued":   decimal.RequireFromString("22"),
				"taken":     decimal.RequireFromString("5"),
				"remaining": decimal.RequireFromString("15"),
			}},
		},
	}

	out, err := svc.ExportPDF(context.Background(), "report-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDelete_UnknownReport(t *testing.T) {
	svc, _, _, _ := newReportFixture()
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), report.ErrReportNotFound)
}
