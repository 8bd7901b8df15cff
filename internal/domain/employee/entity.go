package employee

import "time"

type ContractType string

const (
	ContractPermanent  ContractType = "permanent"
	ContractFixedTerm  ContractType = "fixed_term"
	ContractContractor ContractType = "contractor"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
)

type Employee struct {
	ID             string
	UserID         *string
	FullName       string
	Email          string
	DepartmentID   *string
	Position       string
	ContractType   ContractType
	EmploymentType EmploymentType
	HireDate       time.Time
	TerminatedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	DepartmentName *string
}

// TenureMonths returns full months of service as of the given date.
func (e Employee) TenureMonths(asOf time.Time) int {
	if asOf.Before(e.HireDate) {
		return 0
	}
	months := (asOf.Year()-e.HireDate.Year())*12 + int(asOf.Month()) - int(e.HireDate.Month())
	if asOf.Day() < e.HireDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// IsActive reports whether the employee is currently employed.
func (e Employee) IsActive() bool {
	return e.TerminatedAt == nil
}

type Department struct {
	ID        string
	Name      string
	HeadID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
