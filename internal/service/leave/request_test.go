package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
)

type requestFixture struct {
	svc          *RequestService
	requests     *mockRequestRepo
	types        *mockTypeRepo
	policies     *mockPolicyRepo
	calendars    *mockCalendarRepo
	entitlements *mockEntitlementRepo
	employees    *mockEmployeeRepo
}

func newRequestFixture() *requestFixture {
	f := &requestFixture{
		requests:     newMockRequestRepo(),
		types:        newMockTypeRepo(),
		policies:     newMockPolicyRepo(),
		calendars:    newMockCalendarRepo(),
		entitlements: newMockEntitlementRepo(),
		employees:    newMockEmployeeRepo(),
	}
	f.svc = NewRequestService(nil,
		f.requests, f.types, f.policies, f.calendars,
		f.entitlements, f.employees, nil)
	return f
}

// nextMonday returns a weekday start far enough out to clear notice checks.
func nextMonday() time.Time {
	d := time.Now().AddDate(0, 0, 14)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func (f *requestFixture) seedBasics(remaining string) leave.Entitlement {
	f.employees.add(employee.Employee{
		ID:             "emp-1",
		FullName:       "Test Employee",
		Position:       "engineer",
		ContractType:   employee.ContractPermanent,
		EmploymentType: employee.EmploymentFullTime,
		HireDate:       time.Now().AddDate(-2, 0, 0),
	})
	f.types.types["type-1"] = leave.LeaveType{ID: "type-1", Code: "AL", Deductible: true}
	ent, _ := f.entitlements.Create(context.Background(), leave.Entitlement{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-1",
		Year:           nextMonday().Year(),
		AccruedRounded: decimal.RequireFromString(remaining),
	})
	f.entitlements.writes = 0
	return ent
}

func TestSubmit_ReservesPendingDays(t *testing.T) {
	f := newRequestFixture()
	ent := f.seedBasics("10")
	start := nextMonday()

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 2).Format("2006-01-02"),
		Reason:      "family matters",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusPending, created.Status)
	assert.True(t, created.Days.Equal(decimal.RequireFromString("3")), "Mon-Wed counts three working days")

	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.Pending.Equal(decimal.RequireFromString("3")))
}

func TestSubmit_WeekendOnlyRangeRejected(t *testing.T) {
	f := newRequestFixture()
	f.seedBasics("10")
	saturday := nextMonday().AddDate(0, 0, 5)

	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   saturday.Format("2006-01-02"),
		EndDate:     saturday.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:      "weekend trip",
	})

	assert.ErrorIs(t, err, leave.ErrNoWorkingDays)
	assert.Equal(t, 0, f.requests.writes)
}

func TestSubmit_InsufficientBalanceIssuesNoWrite(t *testing.T) {
	f := newRequestFixture()
	f.seedBasics("1")
	start := nextMonday()

	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 4).Format("2006-01-02"),
		Reason:      "long break",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 0, f.requests.writes)
	assert.Equal(t, 0, f.entitlements.writes)
}

func TestSubmit_BlockedPeriodRejected(t *testing.T) {
	f := newRequestFixture()
	f.seedBasics("10")
	start := nextMonday()
	f.calendars.calendars[start.Year()] = leave.Calendar{
		Year: start.Year(),
		BlockedPeriods: []leave.BlockedPeriod{
			{From: start.AddDate(0, 0, -7), To: start.AddDate(0, 0, 7), Reason: "audit window"},
		},
	}

	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:      "time off",
	})

	assert.ErrorIs(t, err, leave.ErrPeriodBlocked)
	assert.Equal(t, 0, f.requests.writes)
}

func TestSubmit_HolidaysDoNotCount(t *testing.T) {
	f := newRequestFixture()
	ent := f.seedBasics("10")
	start := nextMonday()
	f.calendars.calendars[start.Year()] = leave.Calendar{
		Year:     start.Year(),
		Holidays: []time.Time{start.AddDate(0, 0, 1)},
	}

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 2).Format("2006-01-02"),
		Reason:      "around the holiday",
	})

	require.NoError(t, err)
	assert.True(t, created.Days.Equal(decimal.RequireFromString("2")), "the holiday in the middle is free")
	assert.True(t, f.entitlements.entitlements[ent.ID].Pending.Equal(decimal.RequireFromString("2")))
}

func TestSubmit_AttachmentRequired(t *testing.T) {
	f := newRequestFixture()
	f.seedBasics("10")
	f.types.types["type-1"] = leave.LeaveType{ID: "type-1", Code: "SL", Deductible: true, RequiresAttachment: true}
	start := nextMonday()

	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.Format("2006-01-02"),
		Reason:      "sick",
	})

	assert.ErrorIs(t, err, leave.ErrAttachmentRequired)
	assert.Equal(t, 0, f.requests.writes)
}

func TestSubmit_MinNoticeEnforced(t *testing.T) {
	f := newRequestFixture()
	f.seedBasics("10")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:            "policy-1",
		LeaveTypeID:   "type-1",
		AccrualMethod: leave.AccrualMonthly,
		MinNoticeDays: 30,
	}
	start := nextMonday()

	_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.Format("2006-01-02"),
		Reason:      "short notice",
	})

	assert.ErrorIs(t, err, leave.ErrNoticeTooShort)
}

func TestApprove_MovesPendingToTaken(t *testing.T) {
	f := newRequestFixture()
	ent := f.seedBasics("10")
	start := nextMonday()

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:      "time off",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Approve(context.Background(), created.ID, "mgr-1"))

	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.Pending.IsZero())
	assert.True(t, got.Taken.Equal(decimal.RequireFromString("2")))

	stored, _ := f.requests.GetByID(context.Background(), created.ID)
	assert.Equal(t, leave.RequestStatusApproved, stored.Status)
}

func TestReject_ReleasesPendingHold(t *testing.T) {
	f := newRequestFixture()
	ent := f.seedBasics("10")
	start := nextMonday()

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.Format("2006-01-02"),
		Reason:      "time off",
	})
	require.NoError(t, err)

	err = f.svc.Reject(context.Background(), leave.RejectLeaveRequestRequest{
		RequestID: created.ID,
		Reason:    "coverage gap",
	}, "mgr-1")
	require.NoError(t, err)

	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.Pending.IsZero())
	assert.True(t, got.Taken.IsZero())
}

func TestApprove_EntitlementReadFailurePropagates(t *testing.T) {
	f := newRequestFixture()
	ent := f.seedBasics("10")
	start := nextMonday()

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.Format("2006-01-02"),
		Reason:      "time off",
	})
	require.NoError(t, err)

	// A failing balance read must fail the decision so the transaction
	// rolls back instead of committing a status change with a stuck hold.
	dbErr := errors.New("connection reset")
	f.entitlements.getErr = dbErr

	err = f.svc.Approve(context.Background(), created.ID, "mgr-1")

	assert.ErrorIs(t, err, dbErr)
	assert.True(t, f.entitlements.entitlements[ent.ID].Pending.Equal(decimal.RequireFromString("1")))
}

func TestApprove_AlreadyDecidedRejected(t *testing.T) {
	f := newRequestFixture()
	f.seedBasics("10")
	start := nextMonday()

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.Format("2006-01-02"),
		Reason:      "time off",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(context.Background(), created.ID, "mgr-1"))

	assert.ErrorIs(t, f.svc.Approve(context.Background(), created.ID, "mgr-2"), leave.ErrRequestProcessed)
}

func TestCancel_OnlyOwnerWhilePending(t *testing.T) {
	f := newRequestFixture()
	ent := f.seedBasics("10")
	start := nextMonday()

	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.Format("2006-01-02"),
		Reason:      "time off",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Cancel(context.Background(), created.ID, "emp-2"), leave.ErrRequestNotFound)

	require.NoError(t, f.svc.Cancel(context.Background(), created.ID, "emp-1"))
	assert.True(t, f.entitlements.entitlements[ent.ID].Pending.IsZero())

	stored, _ := f.requests.GetByID(context.Background(), created.ID)
	assert.Equal(t, leave.RequestStatusCancelled, stored.Status)
}
