package schedule

import (
	"context"
	"fmt"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/domain/schedule"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	templateRepo   schedule.TemplateRepository
	assignmentRepo schedule.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
	notifier       notification.NotificationService
}

func NewScheduleService(
	templateRepo schedule.TemplateRepository,
	assignmentRepo schedule.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.NotificationService,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		templateRepo:   templateRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		notifier:       notifier,
	}
}

// CreateTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateTemplate(ctx context.Context, req schedule.CreateTemplateRequest) (schedule.ShiftTemplate, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplate{}, err
	}

	template := schedule.ShiftTemplate{
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		IsActive:     true,
	}

	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return created, nil
}

// ListTemplates implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListTemplates(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	return s.templateRepo.List(ctx)
}

// DeactivateTemplate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeactivateTemplate(ctx context.Context, id string) error {
	if _, err := s.templateRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Deactivate(ctx, id)
}

// AssignShift implements schedule.ScheduleService. One employee holds at
// most one shift per day; the unique index backs this up and the repository
// maps the violation to ErrAssignmentConflict.
func (s *ScheduleServiceImpl) AssignShift(ctx context.Context, req schedule.AssignShiftRequest) (schedule.ShiftAssignment, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftAssignment{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return schedule.ShiftAssignment{}, err
	}
	if _, err := s.templateRepo.GetByID(ctx, req.TemplateID); err != nil {
		return schedule.ShiftAssignment{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	created, err := s.assignmentRepo.Create(ctx, schedule.ShiftAssignment{
		EmployeeID: req.EmployeeID,
		TemplateID: req.TemplateID,
		Date:       date,
	})
	if err != nil {
		return schedule.ShiftAssignment{}, err
	}

	if s.notifier != nil && emp.UserID != nil {
		_ = s.notifier.Notify(ctx, *emp.UserID, nil, notification.TypeScheduleUpdated,
			"Shift assigned",
			fmt.Sprintf("You were assigned a shift on %s", req.Date),
			map[string]interface{}{"assignment_id": created.ID})
	}

	return created, nil
}

// ListAssignments implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListAssignments(ctx context.Context, filter schedule.AssignmentFilter) ([]schedule.ShiftAssignment, error) {
	return s.assignmentRepo.List(ctx, filter)
}

// RemoveAssignment implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) RemoveAssignment(ctx context.Context, id string) error {
	return s.assignmentRepo.Delete(ctx, id)
}
