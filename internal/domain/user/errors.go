package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrAdminAccessRequired   = errors.New("system admin access required")
	ErrHRAccessRequired      = errors.New("HR access required")
	ErrFinanceAccessRequired = errors.New("finance access required")
	ErrRoleNotAllowed        = errors.New("role not allowed for this resource")
	ErrCannotDeactivateSelf  = errors.New("cannot deactivate your own account")
)
