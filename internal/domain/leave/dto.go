package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCategoryRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateTypeRequest struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	CategoryID         string  `json:"category_id"`
	Paid               bool    `json:"paid"`
	Deductible         bool    `json:"deductible"`
	RequiresAttachment bool    `json:"requires_attachment"`
	AttachmentType     *string `json:"attachment_type,omitempty"`
}

func (r *CreateTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidLeaveTypeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 2-20 uppercase letters, digits or underscores",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.CategoryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_id",
			Message: "category_id is required",
		})
	}
	if r.RequiresAttachment && (r.AttachmentType == nil || validator.IsEmpty(*r.AttachmentType)) {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment_type",
			Message: "attachment_type is required when requires_attachment is set",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTypeRequest struct {
	ID                 string  `json:"id"`
	Name               *string `json:"name,omitempty"`
	CategoryID         *string `json:"category_id,omitempty"`
	Paid               *bool   `json:"paid,omitempty"`
	Deductible         *bool   `json:"deductible,omitempty"`
	RequiresAttachment *bool   `json:"requires_attachment,omitempty"`
	AttachmentType     *string `json:"attachment_type,omitempty"`
}

func (r *UpdateTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetEligibilityRequest struct {
	LeaveTypeID string      `json:"leave_type_id"`
	Eligibility Eligibility `json:"eligibility"`
}

func (r *SetEligibilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Eligibility.MinTenureMonths < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "min_tenure_months",
			Message: "min_tenure_months must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreatePolicyRequest struct {
	LeaveTypeID         string           `json:"leave_type_id"`
	AccrualMethod       string           `json:"accrual_method"`
	MonthlyRate         *decimal.Decimal `json:"monthly_rate,omitempty"`
	YearlyRate          *decimal.Decimal `json:"yearly_rate,omitempty"`
	CarryForwardAllowed bool             `json:"carry_forward_allowed"`
	MaxCarryForward     *decimal.Decimal `json:"max_carry_forward,omitempty"`
	ExpiryAfterMonths   *int             `json:"expiry_after_months,omitempty"`
	RoundingRule        string           `json:"rounding_rule"`
	MinNoticeDays       int              `json:"min_notice_days"`
	MaxConsecutiveDays  *int             `json:"max_consecutive_days,omitempty"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if !IsValidAccrualMethod(r.AccrualMethod) {
		errs = append(errs, validator.ValidationError{
			Field:   "accrual_method",
			Message: "accrual_method must be one of monthly, yearly, per_term",
		})
	}
	switch AccrualMethod(r.AccrualMethod) {
	case AccrualMonthly:
		if r.MonthlyRate == nil || !r.MonthlyRate.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_rate",
				Message: "monthly_rate must be a positive number for monthly accrual",
			})
		}
	case AccrualYearly, AccrualPerTerm:
		if r.YearlyRate == nil || !r.YearlyRate.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   "yearly_rate",
				Message: "yearly_rate must be a positive number for yearly or per-term accrual",
			})
		}
	}
	if !IsValidRoundingRule(r.RoundingRule) {
		errs = append(errs, validator.ValidationError{
			Field:   "rounding_rule",
			Message: "rounding_rule must be one of none, nearest_half, nearest_day, up, down",
		})
	}
	if r.CarryForwardAllowed && r.MaxCarryForward != nil && r.MaxCarryForward.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "max_carry_forward",
			Message: "max_carry_forward must not be negative",
		})
	}
	if r.MinNoticeDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "min_notice_days",
			Message: "min_notice_days must not be negative",
		})
	}
	if r.MaxConsecutiveDays != nil && *r.MaxConsecutiveDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_consecutive_days",
			Message: "max_consecutive_days must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePolicyRequest struct {
	ID                  string           `json:"id"`
	AccrualMethod       *string          `json:"accrual_method,omitempty"`
	MonthlyRate         *decimal.Decimal `json:"monthly_rate,omitempty"`
	YearlyRate          *decimal.Decimal `json:"yearly_rate,omitempty"`
	CarryForwardAllowed *bool            `json:"carry_forward_allowed,omitempty"`
	MaxCarryForward     *decimal.Decimal `json:"max_carry_forward,omitempty"`
	ExpiryAfterMonths   *int             `json:"expiry_after_months,omitempty"`
	RoundingRule        *string          `json:"rounding_rule,omitempty"`
	MinNoticeDays       *int             `json:"min_notice_days,omitempty"`
	MaxConsecutiveDays  *int             `json:"max_consecutive_days,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.AccrualMethod != nil && !IsValidAccrualMethod(*r.AccrualMethod) {
		errs = append(errs, validator.ValidationError{
			Field:   "accrual_method",
			Message: "accrual_method must be one of monthly, yearly, per_term",
		})
	}
	if r.RoundingRule != nil && !IsValidRoundingRule(*r.RoundingRule) {
		errs = append(errs, validator.ValidationError{
			Field:   "rounding_rule",
			Message: "rounding_rule must be one of none, nearest_half, nearest_day, up, down",
		})
	}
	if r.MinNoticeDays != nil && *r.MinNoticeDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "min_notice_days",
			Message: "min_notice_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BlockedPeriodRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

type UpsertCalendarRequest struct {
	Year           int                    `json:"year"`
	Holidays       []string               `json:"holidays"`
	BlockedPeriods []BlockedPeriodRequest `json:"blocked_periods"`
}

func (r *UpsertCalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	for _, h := range r.Holidays {
		if _, ok := validator.IsValidDate(h); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "holidays",
				Message: "holidays must be YYYY-MM-DD dates",
			})
			break
		}
	}
	for _, bp := range r.BlockedPeriods {
		from, okFrom := validator.IsValidDate(bp.From)
		to, okTo := validator.IsValidDate(bp.To)
		if !okFrom || !okTo {
			errs = append(errs, validator.ValidationError{
				Field:   "blocked_periods",
				Message: "blocked period dates must be YYYY-MM-DD",
			})
			break
		}
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "blocked_periods",
				Message: "blocked period end must not precede start",
			})
			break
		}
		if validator.IsEmpty(bp.Reason) {
			errs = append(errs, validator.ValidationError{
				Field:   "blocked_periods",
				Message: "blocked periods require a reason",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToCalendar converts the validated request into the entity form.
func (r *UpsertCalendarRequest) ToCalendar() Calendar {
	cal := Calendar{Year: r.Year}
	for _, h := range r.Holidays {
		if d, ok := validator.IsValidDate(h); ok {
			cal.Holidays = append(cal.Holidays, d)
		}
	}
	for _, bp := range r.BlockedPeriods {
		from, _ := validator.IsValidDate(bp.From)
		to, _ := validator.IsValidDate(bp.To)
		cal.BlockedPeriods = append(cal.BlockedPeriods, BlockedPeriod{
			From:   from,
			To:     to,
			Reason: bp.Reason,
		})
	}
	return cal
}

type RunAccrualRequest struct {
	ReferenceDate string  `json:"reference_date"`
	Method        string  `json:"method"`
	RoundingRule  *string `json:"rounding_rule,omitempty"`
}

func (r *RunAccrualRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.ReferenceDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "reference_date",
			Message: "reference_date must be a YYYY-MM-DD date",
		})
	}
	if !IsValidAccrualMethod(r.Method) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of monthly, yearly, per_term",
		})
	}
	if r.RoundingRule != nil && !IsValidRoundingRule(*r.RoundingRule) {
		errs = append(errs, validator.ValidationError{
			Field:   "rounding_rule",
			Message: "rounding_rule must be one of none, nearest_half, nearest_day, up, down",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CarryForwardRequest struct {
	ReferenceDate string           `json:"reference_date"`
	CapDays       *decimal.Decimal `json:"cap_days,omitempty"`
	ExpiryMonths  *int             `json:"expiry_months,omitempty"`
}

func (r *CarryForwardRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.ReferenceDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "reference_date",
			Message: "reference_date must be a YYYY-MM-DD date",
		})
	}
	if r.CapDays != nil && r.CapDays.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "cap_days",
			Message: "cap_days must not be negative",
		})
	}
	if r.ExpiryMonths != nil && *r.ExpiryMonths <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "expiry_months",
			Message: "expiry_months must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RunResult reports how many entitlements a batch run touched.
type RunResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped,omitempty"`
}

type AssignEntitlementRequest struct {
	EmployeeID        string          `json:"employee_id"`
	LeaveTypeID       string          `json:"leave_type_id"`
	Year              int             `json:"year"`
	YearlyEntitlement decimal.Decimal `json:"yearly_entitlement"`
}

func (r *AssignEntitlementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.Year <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive integer",
		})
	}
	if r.YearlyEntitlement.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "yearly_entitlement",
			Message: "yearly_entitlement must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateAdjustmentRequest struct {
	EmployeeID     string          `json:"employee_id"`
	LeaveTypeID    string          `json:"leave_type_id"`
	AdjustmentType string          `json:"adjustment_type"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	HRUserID       string          `json:"hr_user_id"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if !IsValidAdjustmentType(r.AdjustmentType) {
		errs = append(errs, validator.ValidationError{
			Field:   "adjustment_type",
			Message: "adjustment_type must be one of add, deduct, encashment",
		})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a positive number",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if validator.IsEmpty(r.HRUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "hr_user_id",
			Message: "hr_user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AdjustmentResult returns the refreshed balance and history after a
// successful manual adjustment, so callers need no follow-up fetches.
type AdjustmentResult struct {
	Adjustment  Adjustment   `json:"adjustment"`
	Entitlement Entitlement  `json:"entitlement"`
	History     []Adjustment `json:"history"`
}

type ResetEntitlementsRequest struct {
	Year int `json:"year"`
}

func (r *ResetEntitlementsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetSectionAccessRequest struct {
	Section      string   `json:"section"`
	AllowedRoles []string `json:"allowed_roles"`
}

func (r *SetSectionAccessRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidConfigSection(r.Section) {
		errs = append(errs, validator.ValidationError{
			Field:   "section",
			Message: "section is not a known configuration section",
		})
	}
	if len(r.AllowedRoles) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowed_roles",
			Message: "allowed_roles must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveRequestRequest struct {
	EmployeeID    string  `json:"-"`
	LeaveTypeID   string  `json:"leave_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a YYYY-MM-DD date",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a YYYY-MM-DD date",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not precede start_date",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequestRequest struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	EmployeeID  *string
	LeaveTypeID *string
	Status      *string
	Page        int
	Limit       int
}

// EntitlementUpdate carries the partial column set an entitlement write may
// touch. Nil fields are left untouched.
type EntitlementUpdate struct {
	ID                 string
	YearlyEntitlement  *decimal.Decimal
	AccruedActual      *decimal.Decimal
	AccruedRounded     *decimal.Decimal
	CarryForward       *decimal.Decimal
	CarryForwardExpiry *time.Time
	Taken              *decimal.Decimal
	Pending            *decimal.Decimal
	LastAccrualDate    *time.Time
}
