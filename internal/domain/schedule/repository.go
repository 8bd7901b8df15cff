package schedule

import "context"

// TemplateRepository - interface for the shift_templates table
type TemplateRepository interface {
	Create(ctx context.Context, template ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string) (ShiftTemplate, error)
	List(ctx context.Context) ([]ShiftTemplate, error)
	Update(ctx context.Context, template ShiftTemplate) error
	Deactivate(ctx context.Context, id string) error
}

// AssignmentRepository - interface for the shift_assignments table
type AssignmentRepository interface {
	Create(ctx context.Context, assignment ShiftAssignment) (ShiftAssignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]ShiftAssignment, error)
	Delete(ctx context.Context, id string) error
}
