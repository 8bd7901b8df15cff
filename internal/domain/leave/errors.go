package leave

import "errors"

var (
	ErrCategoryNotFound    = errors.New("leave category not found")
	ErrCategoryInUse       = errors.New("leave category still referenced by leave types")
	ErrTypeNotFound        = errors.New("leave type not found")
	ErrTypeCodeExists      = errors.New("leave type code already exists")
	ErrTypeInUse           = errors.New("leave type still referenced by policies or entitlements")
	ErrPolicyNotFound      = errors.New("leave policy not found")
	ErrPolicyExists        = errors.New("leave type already has a policy")
	ErrCalendarNotFound    = errors.New("calendar not found for year")
	ErrEntitlementNotFound = errors.New("entitlement not found")
	ErrInsufficientBalance = errors.New("remaining balance is insufficient")
	ErrNotEligible         = errors.New("employee is not eligible for this leave type")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrRequestProcessed    = errors.New("leave request already processed")
	ErrAttachmentRequired  = errors.New("leave type requires an attachment")
	ErrNoWorkingDays       = errors.New("requested range contains no working days")
	ErrPeriodBlocked       = errors.New("requested period falls in a blocked period")
	ErrNoticeTooShort      = errors.New("minimum notice period not met")
	ErrTooManyConsecutive  = errors.New("request exceeds maximum consecutive days")
	ErrSectionForbidden    = errors.New("role is not allowed to access this section")
)
