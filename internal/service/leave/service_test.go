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
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type configFixture struct {
	svc          *ConfigService
	categories   *mockCategoryRepo
	types        *mockTypeRepo
	policies     *mockPolicyRepo
	calendars    *mockCalendarRepo
	entitlements *mockEntitlementRepo
	adjustments  *mockAdjustmentRepo
	access       *mockAccessRepo
	employees    *mockEmployeeRepo
}

func newConfigFixture() *configFixture {
	f := &configFixture{
		categories:   newMockCategoryRepo(),
		types:        newMockTypeRepo(),
		policies:     newMockPolicyRepo(),
		calendars:    newMockCalendarRepo(),
		entitlements: newMockEntitlementRepo(),
		adjustments:  &mockAdjustmentRepo{},
		access:       newMockAccessRepo(),
		employees:    newMockEmployeeRepo(),
	}
	f.svc = NewConfigService(nil,
		f.categories, f.types, f.policies, f.calendars,
		f.entitlements, f.adjustments, f.access, f.employees, nil)
	return f
}

func (f *configFixture) addEmployee(id string) {
	f.employees.add(employee.Employee{
		ID:             id,
		FullName:       "Test Employee",
		Position:       "engineer",
		ContractType:   employee.ContractPermanent,
		EmploymentType: employee.EmploymentFullTime,
		HireDate:       time.Now().AddDate(-2, 0, 0),
	})
}

func (f *configFixture) addType(id, code string) {
	f.types.types[id] = leave.LeaveType{ID: id, Code: code, Name: code, CategoryID: "cat-1", Deductible: true}
}

func (f *configFixture) addEntitlement(ent leave.Entitlement) leave.Entitlement {
	created, _ := f.entitlements.Create(context.Background(), ent)
	f.entitlements.writes = 0
	return created
}

func TestCreateCategory_EmptyNameIssuesNoWrite(t *testing.T) {
	f := newConfigFixture()

	_, err := f.svc.CreateCategory(context.Background(), leave.CreateCategoryRequest{Name: "   "})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 0, f.categories.writes, "rejected creates must not reach the repository")
}

func TestDeleteCategory_InUseLeavesStateUntouched(t *testing.T) {
	f := newConfigFixture()
	created, err := f.svc.CreateCategory(context.Background(), leave.CreateCategoryRequest{Name: "Statutory"})
	require.NoError(t, err)
	f.categories.typeCounts[created.ID] = 2
	writesBefore := f.categories.writes

	err = f.svc.DeleteCategory(context.Background(), created.ID)

	assert.ErrorIs(t, err, leave.ErrCategoryInUse)
	assert.Equal(t, writesBefore, f.categories.writes)
	_, err = f.categories.GetByID(context.Background(), created.ID)
	assert.NoError(t, err, "category must survive a refused delete")
}

func TestSetEligibility_ReturnsReReadValue(t *testing.T) {
	f := newConfigFixture()
	f.addType("type-1", "AL")

	rules := leave.Eligibility{
		MinTenureMonths:  12,
		PositionsAllowed: []string{"engineer"},
	}
	got, err := f.svc.SetEligibility(context.Background(), leave.SetEligibilityRequest{
		LeaveTypeID: "type-1",
		Eligibility: rules,
	})

	require.NoError(t, err)
	require.NotNil(t, got.Eligibility)
	assert.Equal(t, rules, *got.Eligibility, "returned type must reflect the persisted rules")

	stored, err := f.types.GetByID(context.Background(), "type-1")
	require.NoError(t, err)
	assert.Equal(t, rules, *stored.Eligibility)
}

func TestSetEligibility_MissingTypeID(t *testing.T) {
	f := newConfigFixture()

	_, err := f.svc.SetEligibility(context.Background(), leave.SetEligibilityRequest{})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, 0, f.types.writes)
}

func TestCreateType_DuplicateCode(t *testing.T) {
	f := newConfigFixture()
	cat, err := f.svc.CreateCategory(context.Background(), leave.CreateCategoryRequest{Name: "Statutory"})
	require.NoError(t, err)

	_, err = f.svc.CreateType(context.Background(), leave.CreateTypeRequest{
		Code: "AL", Name: "Annual Leave", CategoryID: cat.ID, Paid: true, Deductible: true,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateType(context.Background(), leave.CreateTypeRequest{
		Code: "AL", Name: "Another", CategoryID: cat.ID,
	})
	assert.ErrorIs(t, err, leave.ErrTypeCodeExists)
}

func TestCreateAdjustment_DeductBeyondBalanceIssuesNoWrite(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	f.addEntitlement(leave.Entitlement{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-1",
		Year:           time.Now().Year(),
		AccruedRounded: decimal.RequireFromString("2"),
	})

	_, err := f.svc.CreateAdjustment(context.Background(), leave.CreateAdjustmentRequest{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-1",
		AdjustmentType: "deduct",
		Amount:         decimal.RequireFromString("5"),
		Reason:         "correction",
		HRUserID:       "hr-1",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 0, f.entitlements.writes, "refused deduct must not touch the balance")
	assert.Empty(t, f.adjustments.adjustments, "refused deduct must not append history")
}

func TestCreateAdjustment_DeductWithoutEntitlementRefused(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")

	_, err := f.svc.CreateAdjustment(context.Background(), leave.CreateAdjustmentRequest{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-1",
		AdjustmentType: "encashment",
		Amount:         decimal.RequireFromString("1"),
		Reason:         "payout",
		HRUserID:       "hr-1",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 0, f.entitlements.writes)
}

func TestCreateAdjustment_AddWithoutEntitlementCreatesOne(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")

	result, err := f.svc.CreateAdjustment(context.Background(), leave.CreateAdjustmentRequest{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-1",
		AdjustmentType: "add",
		Amount:         decimal.RequireFromString("3"),
		Reason:         "signing bonus days",
		HRUserID:       "hr-1",
	})

	require.NoError(t, err)
	assert.True(t, result.Entitlement.AccruedRounded.Equal(decimal.RequireFromString("3")))
	assert.True(t, result.Entitlement.Remaining().Equal(decimal.RequireFromString("3")))
	require.Len(t, result.History, 1)
	assert.Equal(t, leave.AdjustmentAdd, result.History[0].AdjustmentType)
	assert.Equal(t, "hr-1", result.History[0].HRUserID)
}

func TestCreateAdjustment_HistoryIsAppendOnly(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateAdjustment(context.Background(), leave.CreateAdjustmentRequest{
			EmployeeID:     "emp-1",
			LeaveTypeID:    "type-1",
			AdjustmentType: "add",
			Amount:         decimal.RequireFromString("1"),
			Reason:         "grant",
			HRUserID:       "hr-1",
		})
		require.NoError(t, err)
	}

	history, err := f.svc.ListAdjustments(context.Background(), "emp-1", nil)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestAssignEntitlement_UpdatesExistingRow(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	f.addEntitlement(leave.Entitlement{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2026,
		YearlyEntitlement: decimal.RequireFromString("10"),
		Taken:             decimal.RequireFromString("2"),
	})

	got, err := f.svc.AssignEntitlement(context.Background(), leave.AssignEntitlementRequest{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2026,
		YearlyEntitlement: decimal.RequireFromString("15"),
	})

	require.NoError(t, err)
	assert.True(t, got.YearlyEntitlement.Equal(decimal.RequireFromString("15")))
	assert.True(t, got.Taken.Equal(decimal.RequireFromString("2")), "balances survive a quota change")
}

func TestAssignEntitlement_ReadFailureDoesNotCreate(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	dbErr := errors.New("connection reset")
	f.entitlements.getErr = dbErr

	_, err := f.svc.AssignEntitlement(context.Background(), leave.AssignEntitlementRequest{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2026,
		YearlyEntitlement: decimal.RequireFromString("10"),
	})

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 0, f.entitlements.writes, "a failed lookup must not fall through to create")
}

func TestRunAccrual_AppliesRateAndRounding(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	monthlyRate := decimal.RequireFromString("1.25")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:            "policy-1",
		LeaveTypeID:   "type-1",
		AccrualMethod: leave.AccrualMonthly,
		MonthlyRate:   &monthlyRate,
		RoundingRule:  leave.RoundNearestHalf,
	}
	ent := f.addEntitlement(leave.Entitlement{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2026,
		YearlyEntitlement: decimal.RequireFromString("15"),
	})

	result, err := f.svc.RunAccrual(context.Background(), leave.RunAccrualRequest{
		ReferenceDate: "2026-03-31",
		Method:        "monthly",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Skipped)

	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.AccruedActual.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, got.AccruedRounded.Equal(decimal.RequireFromString("1.5")))
	require.NotNil(t, got.LastAccrualDate)
}

func TestRunAccrual_SamePeriodIsIdempotent(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	monthlyRate := decimal.RequireFromString("1")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:            "policy-1",
		LeaveTypeID:   "type-1",
		AccrualMethod: leave.AccrualMonthly,
		MonthlyRate:   &monthlyRate,
		RoundingRule:  leave.RoundNone,
	}
	ent := f.addEntitlement(leave.Entitlement{
		EmployeeID:  "emp-1",
		LeaveTypeID: "type-1",
		Year:        2026,
	})

	req := leave.RunAccrualRequest{ReferenceDate: "2026-03-15", Method: "monthly"}

	first, err := f.svc.RunAccrual(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Processed)

	second, err := f.svc.RunAccrual(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, 1, second.Skipped)

	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.AccruedActual.Equal(decimal.RequireFromString("1")), "re-run must not double-accrue")
}

func TestRunAccrual_SkipsIneligibleEmployee(t *testing.T) {
	f := newConfigFixture()
	f.employees.add(employee.Employee{
		ID:             "emp-new",
		Position:       "engineer",
		ContractType:   employee.ContractPermanent,
		EmploymentType: employee.EmploymentFullTime,
		HireDate:       time.Now().AddDate(0, -1, 0),
	})
	rules := leave.Eligibility{MinTenureMonths: 12}
	f.types.types["type-1"] = leave.LeaveType{ID: "type-1", Code: "AL", Deductible: true, Eligibility: &rules}
	monthlyRate := decimal.RequireFromString("1")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:            "policy-1",
		LeaveTypeID:   "type-1",
		AccrualMethod: leave.AccrualMonthly,
		MonthlyRate:   &monthlyRate,
	}
	f.addEntitlement(leave.Entitlement{
		EmployeeID:  "emp-new",
		LeaveTypeID: "type-1",
		Year:        time.Now().Year(),
	})

	result, err := f.svc.RunAccrual(context.Background(), leave.RunAccrualRequest{
		ReferenceDate: time.Now().Format("2006-01-02"),
		Method:        "monthly",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Skipped)
}

func TestRunAccrual_CapsAtYearlyEntitlement(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	monthlyRate := decimal.RequireFromString("2")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:            "policy-1",
		LeaveTypeID:   "type-1",
		AccrualMethod: leave.AccrualMonthly,
		MonthlyRate:   &monthlyRate,
		RoundingRule:  leave.RoundNone,
	}
	ent := f.addEntitlement(leave.Entitlement{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2026,
		YearlyEntitlement: decimal.RequireFromString("10"),
		AccruedActual:     decimal.RequireFromString("9.5"),
		AccruedRounded:    decimal.RequireFromString("9.5"),
	})

	_, err := f.svc.RunAccrual(context.Background(), leave.RunAccrualRequest{
		ReferenceDate: "2026-06-30",
		Method:        "monthly",
	})

	require.NoError(t, err)
	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.AccruedActual.Equal(decimal.RequireFromString("10")), "accrual stops at the yearly entitlement")
}

func TestRunCarryForward_CapsAndStampsExpiry(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	maxCarry := decimal.RequireFromString("5")
	expiryMonths := 3
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:                  "policy-1",
		LeaveTypeID:         "type-1",
		AccrualMethod:       leave.AccrualMonthly,
		CarryForwardAllowed: true,
		MaxCarryForward:     &maxCarry,
		ExpiryAfterMonths:   &expiryMonths,
	}
	f.addEntitlement(leave.Entitlement{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2025,
		YearlyEntitlement: decimal.RequireFromString("12"),
		AccruedRounded:    decimal.RequireFromString("12"),
		Taken:             decimal.RequireFromString("4"),
	})

	result, err := f.svc.RunCarryForward(context.Background(), leave.CarryForwardRequest{
		ReferenceDate: "2025-12-31",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	next, err := f.entitlements.GetByEmployeeAndType(context.Background(), "emp-1", "type-1", 2026)
	require.NoError(t, err)
	assert.True(t, next.CarryForward.Equal(maxCarry), "remaining 8 capped at 5")
	require.NotNil(t, next.CarryForwardExpiry)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), next.CarryForwardExpiry.UTC())
}

func TestRunCarryForward_JanuaryFirstClosesPriorYear(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "AL")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:                  "policy-1",
		LeaveTypeID:         "type-1",
		AccrualMethod:       leave.AccrualMonthly,
		CarryForwardAllowed: true,
	}
	f.addEntitlement(leave.Entitlement{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2026,
		YearlyEntitlement: decimal.RequireFromString("12"),
		AccruedRounded:    decimal.RequireFromString("12"),
		Taken:             decimal.RequireFromString("4"),
	})

	// The nightly job runs on New Year's Day with that date as reference;
	// the year being carried is the one that just ended.
	result, err := f.svc.RunCarryForward(context.Background(), leave.CarryForwardRequest{
		ReferenceDate: "2027-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	next, err := f.entitlements.GetByEmployeeAndType(context.Background(), "emp-1", "type-1", 2027)
	require.NoError(t, err)
	assert.True(t, next.CarryForward.Equal(decimal.RequireFromString("8")))
}

func TestRunCarryForward_SkipsWhenNotAllowed(t *testing.T) {
	f := newConfigFixture()
	f.addEmployee("emp-1")
	f.addType("type-1", "SL")
	f.policies.policies["policy-1"] = leave.LeavePolicy{
		ID:                  "policy-1",
		LeaveTypeID:         "type-1",
		AccrualMethod:       leave.AccrualMonthly,
		CarryForwardAllowed: false,
	}
	f.addEntitlement(leave.Entitlement{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-1",
		Year:           2025,
		AccruedRounded: decimal.RequireFromString("6"),
	})

	result, err := f.svc.RunCarryForward(context.Background(), leave.CarryForwardRequest{
		ReferenceDate: "2025-12-31",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Skipped)
}

func TestResetEntitlements_ZeroesBalancesKeepsQuota(t *testing.T) {
	f := newConfigFixture()
	ent := f.addEntitlement(leave.Entitlement{
		EmployeeID:        "emp-1",
		LeaveTypeID:       "type-1",
		Year:              2025,
		YearlyEntitlement: decimal.RequireFromString("12"),
		AccruedRounded:    decimal.RequireFromString("8"),
		Taken:             decimal.RequireFromString("3"),
		Pending:           decimal.RequireFromString("1"),
	})

	result, err := f.svc.ResetEntitlements(context.Background(), leave.ResetEntitlementsRequest{Year: 2025})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	got := f.entitlements.entitlements[ent.ID]
	assert.True(t, got.AccruedRounded.IsZero())
	assert.True(t, got.Taken.IsZero())
	assert.True(t, got.Pending.IsZero())
	assert.True(t, got.YearlyEntitlement.Equal(decimal.RequireFromString("12")))
}

func TestCheckSectionAccess(t *testing.T) {
	f := newConfigFixture()
	ctx := context.Background()

	// No stored allow-list: only the admin roles pass.
	assert.NoError(t, f.svc.CheckSectionAccess(ctx, leave.SectionCategories, "hr_admin"))
	assert.NoError(t, f.svc.CheckSectionAccess(ctx, leave.SectionCategories, "system_admin"))
	assert.ErrorIs(t, f.svc.CheckSectionAccess(ctx, leave.SectionCategories, "hr_manager"), leave.ErrSectionForbidden)

	err := f.svc.SetSectionAccess(ctx, leave.SetSectionAccessRequest{
		Section:      string(leave.SectionCategories),
		AllowedRoles: []string{"hr_manager"},
	})
	require.NoError(t, err)

	assert.NoError(t, f.svc.CheckSectionAccess(ctx, leave.SectionCategories, "hr_manager"))
	assert.ErrorIs(t, f.svc.CheckSectionAccess(ctx, leave.SectionCategories, "employee"), leave.ErrSectionForbidden)
}
