package schedule

import "context"

type ScheduleService interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (ShiftTemplate, error)
	ListTemplates(ctx context.Context) ([]ShiftTemplate, error)
	DeactivateTemplate(ctx context.Context, id string) error
	AssignShift(ctx context.Context, req AssignShiftRequest) (ShiftAssignment, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]ShiftAssignment, error)
	RemoveAssignment(ctx context.Context, id string) error
}
