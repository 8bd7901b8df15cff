package performance

import (
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type FileDisputeRequest struct {
	AppraisalID string `json:"appraisal_id"`
	EmployeeID  string `json:"-"`
	Grounds     string `json:"grounds"`
}

func (r *FileDisputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AppraisalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "appraisal_id",
			Message: "appraisal_id is required",
		})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.Grounds) {
		errs = append(errs, validator.ValidationError{
			Field:   "grounds",
			Message: "grounds is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResolveDisputeRequest struct {
	DisputeID  string `json:"dispute_id"`
	Outcome    string `json:"outcome"` // 'resolved' or 'rejected'
	Resolution string `json:"resolution"`
}

func (r *ResolveDisputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DisputeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "dispute_id",
			Message: "dispute_id is required",
		})
	}
	if r.Outcome != string(DisputeResolved) && r.Outcome != string(DisputeRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "outcome",
			Message: "outcome must be resolved or rejected",
		})
	}
	if validator.IsEmpty(r.Resolution) {
		errs = append(errs, validator.ValidationError{
			Field:   "resolution",
			Message: "resolution is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DisputeFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}
