package response

import (
	"errors"
	"net/http"

	"github.com/workforcehq/hrms-backend-go/internal/domain/auth"
	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
	"github.com/workforcehq/hrms-backend-go/internal/domain/performance"
	"github.com/workforcehq/hrms-backend-go/internal/domain/report"
	"github.com/workforcehq/hrms-backend-go/internal/domain/schedule"
	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account deactivated")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrCannotDeactivateSelf):
		Conflict(w, "Cannot deactivate your own account")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrFinanceAccessRequired),
		errors.Is(err, user.ErrRoleNotAllowed):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrEmployeeTerminated):
		BadRequest(w, "Employee is terminated", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrCategoryNotFound):
		NotFound(w, "Leave category not found")
	case errors.Is(err, leave.ErrCategoryInUse):
		Conflict(w, "Leave category still referenced by leave types")
	case errors.Is(err, leave.ErrTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrTypeCodeExists):
		Conflict(w, "Leave type code already exists")
	case errors.Is(err, leave.ErrTypeInUse):
		Conflict(w, "Leave type still referenced by policies or entitlements")
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, leave.ErrPolicyExists):
		Conflict(w, "Leave type already has a policy")
	case errors.Is(err, leave.ErrCalendarNotFound):
		NotFound(w, "Calendar not found for year")
	case errors.Is(err, leave.ErrEntitlementNotFound):
		NotFound(w, "Entitlement not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Remaining balance is insufficient", nil)
	case errors.Is(err, leave.ErrNotEligible):
		Forbidden(w, "Employee is not eligible for this leave type")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrAttachmentRequired):
		BadRequest(w, "Leave type requires an attachment", nil)
	case errors.Is(err, leave.ErrNoWorkingDays):
		BadRequest(w, "Requested range contains no working days", nil)
	case errors.Is(err, leave.ErrPeriodBlocked):
		BadRequest(w, "Requested period falls in a blocked period", nil)
	case errors.Is(err, leave.ErrNoticeTooShort):
		BadRequest(w, "Minimum notice period not met", nil)
	case errors.Is(err, leave.ErrTooManyConsecutive):
		BadRequest(w, "Request exceeds maximum consecutive days", nil)
	case errors.Is(err, leave.ErrSectionForbidden):
		Forbidden(w, "Role is not allowed to access this section")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Payroll status transition not allowed")
	case errors.Is(err, payroll.ErrRunLocked):
		Conflict(w, "Payroll run is locked")

	// Performance domain errors
	case errors.Is(err, performance.ErrAppraisalNotFound):
		NotFound(w, "Appraisal not found")
	case errors.Is(err, performance.ErrDisputeNotFound):
		NotFound(w, "Dispute not found")
	case errors.Is(err, performance.ErrDisputeAlreadyResolved):
		Conflict(w, "Dispute already resolved")
	case errors.Is(err, performance.ErrInvalidDisputeTransition):
		Conflict(w, "Dispute status transition not allowed")
	case errors.Is(err, performance.ErrNotDisputeOwner):
		Forbidden(w, "Dispute belongs to another employee")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, schedule.ErrAssignmentConflict):
		Conflict(w, "Employee already assigned a shift on this date")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrEmptyPeriod):
		BadRequest(w, "No data in the requested period", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Notification belongs to another user")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
