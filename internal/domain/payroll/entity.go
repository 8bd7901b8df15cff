package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRun is one payroll execution for a month, reviewed by payroll and
// finance staff before it can be locked.
type PayrollRun struct {
	ID            string
	PeriodMonth   int
	PeriodYear    int
	Status        RunStatus
	EmployeeCount int
	GrossTotal    decimal.Decimal
	TaxWithheld   decimal.Decimal
	NetTotal      decimal.Decimal
	SubmittedBy   *string
	SubmittedAt   *time.Time
	DecidedBy     *string
	DecidedAt     *time.Time
	RejectReason  *string
	LockedBy      *string
	LockedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Payslip is one employee's line in a payroll run.
type Payslip struct {
	ID          string
	RunID       string
	EmployeeID  string
	BaseSalary  decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	TaxWithheld decimal.Decimal
	NetPay      decimal.Decimal
	CreatedAt   time.Time

	// Joined fields
	EmployeeName *string
	Position     *string
}
