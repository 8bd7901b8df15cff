package payroll

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
)

type mockRunRepo struct {
	runs   map[string]payroll.PayrollRun
	writes int
}

func newMockRunRepo() *mockRunRepo {
	return &mockRunRepo{runs: make(map[string]payroll.PayrollRun)}
}

func (m *mockRunRepo) GetByID(_ context.Context, id string) (payroll.PayrollRun, error) {
	r, ok := m.runs[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return r, nil
}

func (m *mockRunRepo) List(_ context.Context, filter payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	var out []payroll.PayrollRun
	for _, r := range m.runs {
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.Year != nil && r.PeriodYear != *filter.Year {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *mockRunRepo) UpdateStatus(_ context.Context, run payroll.PayrollRun) error {
	if _, ok := m.runs[run.ID]; !ok {
		return payroll.ErrRunNotFound
	}
	m.writes++
	m.runs[run.ID] = run
	return nil
}

type mockPayslipRepo struct {
	payslips map[string]payroll.Payslip
}

func newMockPayslipRepo() *mockPayslipRepo {
	return &mockPayslipRepo{payslips: make(map[string]payroll.Payslip)}
}

func (m *mockPayslipRepo) GetByID(_ context.Context, id string) (payroll.Payslip, error) {
	p, ok := m.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, nil
}

func (m *mockPayslipRepo) ListByRun(_ context.Context, runID string) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range m.payslips {
		if p.RunID == runID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPayslipRepo) ListByEmployee(_ context.Context, employeeID string, _ int) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range m.payslips {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newPayrollFixture(status payroll.RunStatus) (*PayrollServiceImpl, *mockRunRepo, *mockPayslipRepo) {
	runRepo := newMockRunRepo()
	payslipRepo := newMockPayslipRepo()
	runRepo.runs["run-1"] = payroll.PayrollRun{
		ID:          "run-1",
		PeriodMonth: 3,
		PeriodYear:  2026,
		Status:      status,
	}
	return NewPayrollService(runRepo, payslipRepo, nil, nil), runRepo, payslipRepo
}

func TestSubmitForApproval_FromDraft(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusDraft)

	require.NoError(t, svc.SubmitForApproval(context.Background(), "run-1", "staff-1"))

	run := runRepo.runs["run-1"]
	assert.Equal(t, payroll.StatusPendingApproval, run.Status)
	require.NotNil(t, run.SubmittedBy)
	assert.Equal(t, "staff-1", *run.SubmittedBy)
	assert.NotNil(t, run.SubmittedAt)
}

func TestSubmitForApproval_ResubmitClearsRejectReason(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusRejected)
	reason := "tax column off by one"
	run := runRepo.runs["run-1"]
	run.RejectReason = &reason
	runRepo.runs["run-1"] = run

	require.NoError(t, svc.SubmitForApproval(context.Background(), "run-1", "staff-1"))

	assert.Nil(t, runRepo.runs["run-1"].RejectReason)
	assert.Equal(t, payroll.StatusPendingApproval, runRepo.runs["run-1"].Status)
}

func TestApproveRun_RequiresPendingStatus(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusDraft)

	err := svc.ApproveRun(context.Background(), "run-1", "finance-1")

	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
	assert.Equal(t, 0, runRepo.writes)
}

func TestApproveRun_StampsDecision(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusPendingApproval)

	require.NoError(t, svc.ApproveRun(context.Background(), "run-1", "finance-1"))

	run := runRepo.runs["run-1"]
	assert.Equal(t, payroll.StatusApproved, run.Status)
	require.NotNil(t, run.DecidedBy)
	assert.Equal(t, "finance-1", *run.DecidedBy)
}

func TestRejectRun_RequiresReason(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusPendingApproval)

	err := svc.RejectRun(context.Background(), payroll.RejectRunRequest{RunID: "run-1"}, "finance-1")

	assert.Error(t, err)
	assert.Equal(t, 0, runRepo.writes)
}

func TestRejectRun_StoresReason(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusPendingApproval)

	err := svc.RejectRun(context.Background(), payroll.RejectRunRequest{
		RunID:  "run-1",
		Reason: "headcount mismatch",
	}, "finance-1")

	require.NoError(t, err)
	run := runRepo.runs["run-1"]
	assert.Equal(t, payroll.StatusRejected, run.Status)
	require.NotNil(t, run.RejectReason)
	assert.Equal(t, "headcount mismatch", *run.RejectReason)
}

func TestLockRun_OnlyFromApproved(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusApproved)

	require.NoError(t, svc.LockRun(context.Background(), "run-1", "finance-1"))
	assert.Equal(t, payroll.StatusLocked, runRepo.runs["run-1"].Status)
}

func TestLockedRunRefusesEveryMutation(t *testing.T) {
	svc, runRepo, _ := newPayrollFixture(payroll.StatusLocked)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SubmitForApproval(ctx, "run-1", "u"), payroll.ErrRunLocked)
	assert.ErrorIs(t, svc.ApproveRun(ctx, "run-1", "u"), payroll.ErrRunLocked)
	assert.ErrorIs(t, svc.RejectRun(ctx, payroll.RejectRunRequest{RunID: "run-1", Reason: "late"}, "u"), payroll.ErrRunLocked)
	assert.ErrorIs(t, svc.LockRun(ctx, "run-1", "u"), payroll.ErrRunLocked)
	assert.Equal(t, 0, runRepo.writes)
}

func TestListRuns_RejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _ := newPayrollFixture(payroll.StatusDraft)
	bad := "done"

	_, _, err := svc.ListRuns(context.Background(), payroll.RunFilter{Status: &bad})
	assert.Error(t, err)
}

func TestPayslipPDF_RendersDocument(t *testing.T) {
	svc, _, payslipRepo := newPayrollFixture(payroll.StatusLocked)
	name := "Jane Doe"
	payslipRepo.payslips["slip-1"] = payroll.Payslip{
		ID:           "slip-1",
		RunID:        "run-1",
		EmployeeID:   "emp-1",
		EmployeeName: &name,
		BaseSalary:   decimal.RequireFromString("5000"),
		Allowances:   decimal.RequireFromString("250.50"),
		Deductions:   decimal.RequireFromString("100"),
		TaxWithheld:  decimal.RequireFromString("900"),
		NetPay:       decimal.RequireFromString("4250.50"),
	}

	out, err := svc.PayslipPDF(context.Background(), "slip-1")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPayslipPDF_UnknownPayslip(t *testing.T) {
	svc, _, _ := newPayrollFixture(payroll.StatusLocked)

	_, err := svc.PayslipPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}
