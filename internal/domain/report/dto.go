package report

import (
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Kind        string `json:"kind"`
	PeriodYear  int    `json:"period_year"`
	PeriodMonth *int   `json:"period_month,omitempty"`
	GeneratedBy string `json:"-"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidKind(r.Kind) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of payroll_summary, leave_liability",
		})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year must be between 2000 and 2100",
		})
	}
	if r.PeriodMonth != nil && (*r.PeriodMonth < 1 || *r.PeriodMonth > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
