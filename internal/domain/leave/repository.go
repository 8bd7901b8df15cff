package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// CategoryRepository - interface for the leave_categories table
type CategoryRepository interface {
	Create(ctx context.Context, category LeaveCategory) (LeaveCategory, error)
	GetByID(ctx context.Context, id string) (LeaveCategory, error)
	List(ctx context.Context) ([]LeaveCategory, error)
	Update(ctx context.Context, category LeaveCategory) error
	Delete(ctx context.Context, id string) error
	CountTypes(ctx context.Context, categoryID string) (int64, error)
}

// TypeRepository - interface for the leave_types table
type TypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	SetEligibility(ctx context.Context, id string, eligibility Eligibility) error
	Delete(ctx context.Context, id string) error
}

// PolicyRepository - interface for the leave_policies table
type PolicyRepository interface {
	Create(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
	GetByID(ctx context.Context, id string) (LeavePolicy, error)
	GetByLeaveType(ctx context.Context, leaveTypeID string) (LeavePolicy, error)
	List(ctx context.Context) ([]LeavePolicy, error)
	ListByMethod(ctx context.Context, method AccrualMethod) ([]LeavePolicy, error)
	Update(ctx context.Context, req UpdatePolicyRequest) error
	Delete(ctx context.Context, id string) error
}

// CalendarRepository - interface for the leave_calendars table
type CalendarRepository interface {
	Upsert(ctx context.Context, calendar Calendar) (Calendar, error)
	GetByYear(ctx context.Context, year int) (Calendar, error)
}

// EntitlementRepository - interface for the entitlements table
type EntitlementRepository interface {
	Create(ctx context.Context, entitlement Entitlement) (Entitlement, error)
	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string, year int) (Entitlement, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Entitlement, error)
	ListByLeaveType(ctx context.Context, leaveTypeID string, year int) ([]Entitlement, error)
	ListByYear(ctx context.Context, year int) ([]Entitlement, error)
	Update(ctx context.Context, update EntitlementUpdate) error
	// ApplyAdjustment shifts the accrued balance by delta in one statement,
	// refusing a change that would drive the remaining balance negative.
	ApplyAdjustment(ctx context.Context, id string, delta decimal.Decimal) error
	AddPending(ctx context.Context, id string, days decimal.Decimal) error
	ReleasePending(ctx context.Context, id string, days decimal.Decimal) error
	MovePendingToTaken(ctx context.Context, id string, days decimal.Decimal) error
	ResetYear(ctx context.Context, year int) (int64, error)
}

// AdjustmentRepository - append-only interface for the leave_adjustments table
type AdjustmentRepository interface {
	Append(ctx context.Context, adjustment Adjustment) (Adjustment, error)
	ListByEmployee(ctx context.Context, employeeID string, leaveTypeID *string) ([]Adjustment, error)
}

// AccessRepository - interface for the leave_section_access table
type AccessRepository interface {
	Get(ctx context.Context, section ConfigSection) (SectionAccess, error)
	List(ctx context.Context) ([]SectionAccess, error)
	Set(ctx context.Context, access SectionAccess) error
}

// RequestRepository - interface for the leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, approverID *string, rejectionReason *string) error
}
