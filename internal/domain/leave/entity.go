package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveCategory groups leave types for the configuration screens.
type LeaveCategory struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Eligibility gates which employees may use a leave type. An empty slice
// means no restriction on that axis.
type Eligibility struct {
	MinTenureMonths      int      `json:"min_tenure_months"`
	PositionsAllowed     []string `json:"positions_allowed,omitempty"`
	ContractTypesAllowed []string `json:"contract_types_allowed,omitempty"`
	EmploymentTypes      []string `json:"employment_types,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (e Eligibility) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements sql.Scanner for JSONB retrieval
func (e *Eligibility) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Eligibility: invalid type")
	}

	return json.Unmarshal(bytes, e)
}

// Allows reports whether an employee with the given attributes passes the
// eligibility rules as of asOf.
func (e Eligibility) Allows(position, contractType, employmentType string, tenureMonths int) bool {
	if tenureMonths < e.MinTenureMonths {
		return false
	}
	if len(e.PositionsAllowed) > 0 && !contains(e.PositionsAllowed, position) {
		return false
	}
	if len(e.ContractTypesAllowed) > 0 && !contains(e.ContractTypesAllowed, contractType) {
		return false
	}
	if len(e.EmploymentTypes) > 0 && !contains(e.EmploymentTypes, employmentType) {
		return false
	}
	return true
}

func contains(slice []string, value string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// LeaveType entity
type LeaveType struct {
	ID                 string
	Code               string
	Name               string
	CategoryID         string
	Paid               bool
	Deductible         bool
	RequiresAttachment bool
	AttachmentType     *string // e.g. 'medical_certificate'
	Eligibility        *Eligibility
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	CategoryName *string
}

type AccrualMethod string

const (
	AccrualMonthly AccrualMethod = "monthly"
	AccrualYearly  AccrualMethod = "yearly"
	AccrualPerTerm AccrualMethod = "per_term"
)

func IsValidAccrualMethod(s string) bool {
	switch AccrualMethod(s) {
	case AccrualMonthly, AccrualYearly, AccrualPerTerm:
		return true
	}
	return false
}

type RoundingRule string

const (
	RoundNone        RoundingRule = "none"
	RoundNearestHalf RoundingRule = "nearest_half"
	RoundNearestDay  RoundingRule = "nearest_day"
	RoundUp          RoundingRule = "up"
	RoundDown        RoundingRule = "down"
)

func IsValidRoundingRule(s string) bool {
	switch RoundingRule(s) {
	case RoundNone, RoundNearestHalf, RoundNearestDay, RoundUp, RoundDown:
		return true
	}
	return false
}

// Apply rounds an accrued balance according to the rule.
func (r RoundingRule) Apply(d decimal.Decimal) decimal.Decimal {
	switch r {
	case RoundNearestHalf:
		// Round to the nearest 0.5 day.
		return d.Mul(decimal.NewFromInt(2)).Round(0).Div(decimal.NewFromInt(2))
	case RoundNearestDay:
		return d.Round(0)
	case RoundUp:
		return d.Ceil()
	case RoundDown:
		return d.Floor()
	default:
		return d
	}
}

// LeavePolicy holds the accrual and consumption rules for one leave type.
type LeavePolicy struct {
	ID                  string
	LeaveTypeID         string
	AccrualMethod       AccrualMethod
	MonthlyRate         *decimal.Decimal
	YearlyRate          *decimal.Decimal
	CarryForwardAllowed bool
	MaxCarryForward     *decimal.Decimal
	ExpiryAfterMonths   *int
	RoundingRule        RoundingRule
	MinNoticeDays       int
	MaxConsecutiveDays  *int
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	LeaveTypeName *string
}

// PeriodRate returns the amount one accrual run adds under this policy.
func (p LeavePolicy) PeriodRate() decimal.Decimal {
	switch p.AccrualMethod {
	case AccrualMonthly:
		if p.MonthlyRate != nil {
			return *p.MonthlyRate
		}
	case AccrualYearly, AccrualPerTerm:
		if p.YearlyRate != nil {
			return *p.YearlyRate
		}
	}
	return decimal.Zero
}

// BlockedPeriod is a date range during which leave may not be taken.
type BlockedPeriod struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Reason string    `json:"reason"`
}

// Calendar holds per-year holidays and blocked periods.
type Calendar struct {
	ID             string
	Year           int
	Holidays       []time.Time
	BlockedPeriods []BlockedPeriod
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsHoliday reports whether the given date falls on a configured holiday.
func (c Calendar) IsHoliday(day time.Time) bool {
	y, m, d := day.Date()
	for _, h := range c.Holidays {
		hy, hm, hd := h.Date()
		if y == hy && m == hm && d == hd {
			return true
		}
	}
	return false
}

// BlockedOn returns the blocked period covering the date, if any.
func (c Calendar) BlockedOn(day time.Time) *BlockedPeriod {
	for i := range c.BlockedPeriods {
		bp := c.BlockedPeriods[i]
		if !day.Before(bp.From) && !day.After(bp.To) {
			return &bp
		}
	}
	return nil
}

// Entitlement is a per-employee, per-leave-type balance.
type Entitlement struct {
	ID                 string
	EmployeeID         string
	LeaveTypeID        string
	Year               int
	YearlyEntitlement  decimal.Decimal
	AccruedActual      decimal.Decimal
	AccruedRounded     decimal.Decimal
	CarryForward       decimal.Decimal
	CarryForwardExpiry *time.Time
	Taken              decimal.Decimal
	Pending            decimal.Decimal
	LastAccrualDate    *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
}

// Remaining is the spendable balance: rounded accrual plus carry-forward
// minus days taken or pending approval.
func (e Entitlement) Remaining() decimal.Decimal {
	return e.AccruedRounded.Add(e.CarryForward).Sub(e.Taken).Sub(e.Pending)
}

type AdjustmentType string

const (
	AdjustmentAdd        AdjustmentType = "add"
	AdjustmentDeduct     AdjustmentType = "deduct"
	AdjustmentEncashment AdjustmentType = "encashment"
)

func IsValidAdjustmentType(s string) bool {
	switch AdjustmentType(s) {
	case AdjustmentAdd, AdjustmentDeduct, AdjustmentEncashment:
		return true
	}
	return false
}

// Deducts reports whether the adjustment lowers the balance.
func (t AdjustmentType) Deducts() bool {
	return t == AdjustmentDeduct || t == AdjustmentEncashment
}

// Adjustment is one append-only audit record of a manual balance change.
type Adjustment struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	AdjustmentType AdjustmentType
	Amount         decimal.Decimal
	Reason         string
	HRUserID       string
	AppliedAt      time.Time

	// Joined fields
	LeaveTypeName *string
}

// ConfigSection names one tab of the leave configuration area.
type ConfigSection string

const (
	SectionCategories    ConfigSection = "categories"
	SectionTypes         ConfigSection = "types"
	SectionPolicies      ConfigSection = "policies"
	SectionEligibility   ConfigSection = "eligibility"
	SectionCalendar      ConfigSection = "calendar"
	SectionAccruals      ConfigSection = "accruals"
	SectionEntitlements  ConfigSection = "entitlements"
	SectionAdjustments   ConfigSection = "adjustments"
	SectionRequests      ConfigSection = "requests"
	SectionReset         ConfigSection = "reset"
	SectionAccessControl ConfigSection = "access_control"
)

// AllConfigSections returns every configurable section.
func AllConfigSections() []ConfigSection {
	return []ConfigSection{
		SectionCategories, SectionTypes, SectionPolicies, SectionEligibility,
		SectionCalendar, SectionAccruals, SectionEntitlements,
		SectionAdjustments, SectionRequests, SectionReset, SectionAccessControl,
	}
}

func IsValidConfigSection(s string) bool {
	for _, sec := range AllConfigSections() {
		if string(sec) == s {
			return true
		}
	}
	return false
}

// SectionAccess is the role allow-list for one config section.
type SectionAccess struct {
	Section      ConfigSection
	AllowedRoles []string
	UpdatedAt    time.Time
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID              string
	EmployeeID      string
	LeaveTypeID     string
	StartDate       time.Time
	EndDate         time.Time
	Days            decimal.Decimal
	Reason          string
	AttachmentURL   *string
	Status          RequestStatus
	ApproverID      *string
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
}
