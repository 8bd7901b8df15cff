package user

import (
	"context"

	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type UserService interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) error
	Deactivate(ctx context.Context, id string, actorID string) error
}

type UpdateRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is not a known role",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
