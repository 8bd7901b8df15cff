package payroll

import "errors"

var (
	ErrRunNotFound       = errors.New("payroll run not found")
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrInvalidTransition = errors.New("payroll status transition not allowed")
	ErrRunLocked         = errors.New("payroll run is locked")
)
