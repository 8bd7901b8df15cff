package analytics

import "github.com/shopspring/decimal"

// DepartmentHeadcount is one row of the org headcount breakdown.
type DepartmentHeadcount struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Headcount      int    `json:"headcount"`
	OnLeaveToday   int    `json:"on_leave_today"`
}

// LeaveUtilization summarizes balance consumption per leave type for a year.
type LeaveUtilization struct {
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName string          `json:"leave_type_name"`
	TotalAccrued  decimal.Decimal `json:"total_accrued"`
	TotalTaken    decimal.Decimal `json:"total_taken"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	Utilization   decimal.Decimal `json:"utilization"` // taken / accrued, 0 when nothing accrued
}

// PayrollCost is the monthly payroll cost line for the finance dashboard.
type PayrollCost struct {
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	GrossTotal  decimal.Decimal `json:"gross_total"`
	TaxWithheld decimal.Decimal `json:"tax_withheld"`
	NetTotal    decimal.Decimal `json:"net_total"`
}
