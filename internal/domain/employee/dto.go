package employee

import (
	"context"

	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type EmployeeService interface {
	GetProfile(ctx context.Context, userID string) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}

type ListFilter struct {
	DepartmentID *string
	Position     *string
	ContractType *string
	ActiveOnly   bool
	Page         int
	Limit        int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must not be negative",
		})
	}
	if f.Limit < 0 || f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 0 and 200",
		})
	}
	if f.ContractType != nil {
		valid := validator.IsInSlice(*f.ContractType, []string{
			string(ContractPermanent), string(ContractFixedTerm), string(ContractContractor),
		})
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "contract_type",
				Message: "contract_type must be one of permanent, fixed_term, contractor",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
