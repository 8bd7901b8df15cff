package performance

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hrms-backend-go/internal/domain/performance"
)

type mockAppraisalRepo struct {
	appraisals map[string]performance.Appraisal
}

func newMockAppraisalRepo() *mockAppraisalRepo {
	return &mockAppraisalRepo{appraisals: make(map[string]performance.Appraisal)}
}

func (m *mockAppraisalRepo) GetByID(_ context.Context, id string) (performance.Appraisal, error) {
	a, ok := m.appraisals[id]
	if !ok {
		return performance.Appraisal{}, performance.ErrAppraisalNotFound
	}
	return a, nil
}

func (m *mockAppraisalRepo) ListByEmployee(_ context.Context, employeeID string) ([]performance.Appraisal, error) {
	var out []performance.Appraisal
	for _, a := range m.appraisals {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAppraisalRepo) ListByPeriod(_ context.Context, period string) ([]performance.Appraisal, error) {
	var out []performance.Appraisal
	for _, a := range m.appraisals {
		if a.Period == period {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockDisputeRepo struct {
	disputes map[string]performance.Dispute
	writes   int
}

func newMockDisputeRepo() *mockDisputeRepo {
	return &mockDisputeRepo{disputes: make(map[string]performance.Dispute)}
}

func (m *mockDisputeRepo) Create(_ context.Context, dispute performance.Dispute) (performance.Dispute, error) {
	m.writes++
	dispute.ID = fmt.Sprintf("dispute-%d", len(m.disputes)+1)
	m.disputes[dispute.ID] = dispute
	return dispute, nil
}

func (m *mockDisputeRepo) GetByID(_ context.Context, id string) (performance.Dispute, error) {
	d, ok := m.disputes[id]
	if !ok {
		return performance.Dispute{}, performance.ErrDisputeNotFound
	}
	return d, nil
}

func (m *mockDisputeRepo) List(_ context.Context, filter performance.DisputeFilter) ([]performance.Dispute, int64, error) {
	var out []performance.Dispute
	for _, d := range m.disputes {
		if filter.EmployeeID != nil && d.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(d.Status) != *filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (m *mockDisputeRepo) UpdateStatus(_ context.Context, dispute performance.Dispute) error {
	if _, ok := m.disputes[dispute.ID]; !ok {
		return performance.ErrDisputeNotFound
	}
	m.writes++
	m.disputes[dispute.ID] = dispute
	return nil
}

func newPerformanceFixture() (*PerformanceServiceImpl, *mockAppraisalRepo, *mockDisputeRepo) {
	appraisalRepo := newMockAppraisalRepo()
	disputeRepo := newMockDisputeRepo()
	appraisalRepo.appraisals["appr-1"] = performance.Appraisal{
		ID:         "appr-1",
		EmployeeID: "emp-1",
		Period:     "2026-H1",
		Score:      decimal.RequireFromString("3.2"),
		Rating:     "meets_expectations",
		ReviewerID: "mgr-1",
	}
	return NewPerformanceService(appraisalRepo, disputeRepo, nil, nil, nil), appraisalRepo, disputeRepo
}

func TestFileDispute_OwnerOnly(t *testing.T) {
	svc, _, disputeRepo := newPerformanceFixture()

	_, err := svc.FileDispute(context.Background(), performance.FileDisputeRequest{
		AppraisalID: "appr-1",
		EmployeeID:  "emp-2",
		Grounds:     "score does not reflect the delivered project",
	})

	assert.ErrorIs(t, err, performance.ErrNotDisputeOwner)
	assert.Equal(t, 0, disputeRepo.writes)
}

func TestFileDispute_OpensDispute(t *testing.T) {
	svc, _, disputeRepo := newPerformanceFixture()

	created, err := svc.FileDispute(context.Background(), performance.FileDisputeRequest{
		AppraisalID: "appr-1",
		EmployeeID:  "emp-1",
		Grounds:     "score does not reflect the delivered project",
	})

	require.NoError(t, err)
	assert.Equal(t, performance.DisputeOpen, created.Status)
	assert.Equal(t, "appr-1", created.AppraisalID)
	assert.Len(t, disputeRepo.disputes, 1)
}

func TestTakeDispute_AssignsReviewer(t *testing.T) {
	svc, _, disputeRepo := newPerformanceFixture()
	created, err := svc.FileDispute(context.Background(), performance.FileDisputeRequest{
		AppraisalID: "appr-1",
		EmployeeID:  "emp-1",
		Grounds:     "rating too low",
	})
	require.NoError(t, err)

	require.NoError(t, svc.TakeDispute(context.Background(), created.ID, "hr-mgr-1"))

	got := disputeRepo.disputes[created.ID]
	assert.Equal(t, performance.DisputeUnderReview, got.Status)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, "hr-mgr-1", *got.AssigneeID)

	assert.ErrorIs(t, svc.TakeDispute(context.Background(), created.ID, "hr-mgr-2"),
		performance.ErrInvalidDisputeTransition)
}

func TestResolveDispute_RequiresReview(t *testing.T) {
	svc, _, _ := newPerformanceFixture()
	created, err := svc.FileDispute(context.Background(), performance.FileDisputeRequest{
		AppraisalID: "appr-1",
		EmployeeID:  "emp-1",
		Grounds:     "rating too low",
	})
	require.NoError(t, err)

	err = svc.ResolveDispute(context.Background(), performance.ResolveDisputeRequest{
		DisputeID:  created.ID,
		Outcome:    "resolved",
		Resolution: "score adjusted after recalibration",
	}, "hr-mgr-1")

	assert.ErrorIs(t, err, performance.ErrInvalidDisputeTransition)
}

func TestResolveDispute_TerminalOutcome(t *testing.T) {
	svc, _, disputeRepo := newPerformanceFixture()
	created, err := svc.FileDispute(context.Background(), performance.FileDisputeRequest{
		AppraisalID: "appr-1",
		EmployeeID:  "emp-1",
		Grounds:     "rating too low",
	})
	require.NoError(t, err)
	require.NoError(t, svc.TakeDispute(context.Background(), created.ID, "hr-mgr-1"))

	req := performance.ResolveDisputeRequest{
		DisputeID:  created.ID,
		Outcome:    "rejected",
		Resolution: "score matches the calibration committee outcome",
	}
	require.NoError(t, svc.ResolveDispute(context.Background(), req, "hr-mgr-1"))

	got := disputeRepo.disputes[created.ID]
	assert.Equal(t, performance.DisputeRejected, got.Status)
	require.NotNil(t, got.Resolution)
	assert.NotNil(t, got.ResolvedAt)

	err = svc.ResolveDispute(context.Background(), req, "hr-mgr-1")
	assert.ErrorIs(t, err, performance.ErrDisputeAlreadyResolved)
}

func TestDisputeTransitionTable(t *testing.T) {
	assert.True(t, performance.CanTransition(performance.DisputeOpen, performance.DisputeUnderReview))
	assert.False(t, performance.CanTransition(performance.DisputeOpen, performance.DisputeResolved))
	assert.True(t, performance.CanTransition(performance.DisputeUnderReview, performance.DisputeResolved))
	assert.True(t, performance.CanTransition(performance.DisputeUnderReview, performance.DisputeRejected))
	assert.False(t, performance.CanTransition(performance.DisputeResolved, performance.DisputeUnderReview))
	assert.False(t, performance.CanTransition(performance.DisputeRejected, performance.DisputeUnderReview))
}
