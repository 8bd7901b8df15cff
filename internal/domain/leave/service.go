package leave

import (
	"context"
)

// ConfigService is the leave configuration surface: the eleven admin tabs
// backed by one service.
type ConfigService interface {
	// Categories
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (LeaveCategory, error)
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) error
	ListCategories(ctx context.Context) ([]LeaveCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	// Types
	CreateType(ctx context.Context, req CreateTypeRequest) (LeaveType, error)
	UpdateType(ctx context.Context, req UpdateTypeRequest) error
	GetType(ctx context.Context, id string) (LeaveType, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
	DeleteType(ctx context.Context, id string) error

	// Eligibility
	SetEligibility(ctx context.Context, req SetEligibilityRequest) (LeaveType, error)

	// Policies
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (LeavePolicy, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) error
	ListPolicies(ctx context.Context) ([]LeavePolicy, error)
	DeletePolicy(ctx context.Context, id string) error

	// Calendar
	UpsertCalendar(ctx context.Context, req UpsertCalendarRequest) (Calendar, error)
	GetCalendar(ctx context.Context, year int) (Calendar, error)

	// Batch runs
	RunAccrual(ctx context.Context, req RunAccrualRequest) (RunResult, error)
	RunCarryForward(ctx context.Context, req CarryForwardRequest) (RunResult, error)

	// Entitlements
	AssignEntitlement(ctx context.Context, req AssignEntitlementRequest) (Entitlement, error)
	GetEntitlement(ctx context.Context, employeeID, leaveTypeID string, year int) (Entitlement, error)
	ListEntitlements(ctx context.Context, employeeID string, year int) ([]Entitlement, error)

	// Manual adjustments
	CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResult, error)
	ListAdjustments(ctx context.Context, employeeID string, leaveTypeID *string) ([]Adjustment, error)

	// Reset
	ResetEntitlements(ctx context.Context, req ResetEntitlementsRequest) (RunResult, error)

	// Access control
	GetSectionAccess(ctx context.Context) ([]SectionAccess, error)
	SetSectionAccess(ctx context.Context, req SetSectionAccessRequest) error
	CheckSectionAccess(ctx context.Context, section ConfigSection, role string) error
}

// RequestService is the employee-facing leave request lifecycle.
type RequestService interface {
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	Approve(ctx context.Context, requestID, approverID string) error
	Reject(ctx context.Context, req RejectLeaveRequestRequest, approverID string) error
	Cancel(ctx context.Context, requestID, employeeID string) error
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)
	Get(ctx context.Context, requestID string) (LeaveRequest, error)
}
