package user

import "time"

type Role string

const (
	RoleSystemAdmin    Role = "system_admin"    // Platform administration
	RoleHRAdmin        Role = "hr_admin"        // Leave/policy configuration, adjustments
	RoleHRManager      Role = "hr_manager"      // Approvals, appraisals, dispute handling
	RolePayrollStaff   Role = "payroll_staff"   // Payroll run preparation
	RoleFinanceStaff   Role = "finance_staff"   // Payroll approval, finance reports
	RoleDepartmentHead Role = "department_head" // Team schedules and analytics
	RoleEmployee       Role = "employee"        // Self-service
)

// AllRoles returns every role the product knows about.
func AllRoles() []Role {
	return []Role{
		RoleSystemAdmin,
		RoleHRAdmin,
		RoleHRManager,
		RolePayrollStaff,
		RoleFinanceStaff,
		RoleDepartmentHead,
		RoleEmployee,
	}
}

// IsValidRole reports whether s names a known role.
func IsValidRole(s string) bool {
	for _, r := range AllRoles() {
		if string(r) == s {
			return true
		}
	}
	return false
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsSystemAdmin checks for the platform administration role.
func (u *User) IsSystemAdmin() bool {
	return u.Role == RoleSystemAdmin
}

// IsHRStaff checks whether the user belongs to the HR side of the house.
func (u *User) IsHRStaff() bool {
	return u.Role == RoleHRAdmin || u.Role == RoleHRManager || u.Role == RoleSystemAdmin
}

// CanReviewPayroll checks whether the user participates in payroll review.
func (u *User) CanReviewPayroll() bool {
	return u.Role == RolePayrollStaff || u.Role == RoleFinanceStaff || u.Role == RoleSystemAdmin
}
