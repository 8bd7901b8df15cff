package schedule

import "time"

// ShiftTemplate defines a reusable working window.
type ShiftTemplate struct {
	ID           string
	Name         string
	StartTime    string // "HH:MM" wall clock
	EndTime      string
	BreakMinutes int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ShiftAssignment places one employee on a template for one day.
type ShiftAssignment struct {
	ID         string
	EmployeeID string
	TemplateID string
	Date       time.Time
	CreatedAt  time.Time

	// Joined fields
	EmployeeName *string
	TemplateName *string
	StartTime    *string
	EndTime      *string
}
