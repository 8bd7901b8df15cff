package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/schedule"
)

type mockTemplateRepo struct {
	templates map[string]schedule.ShiftTemplate
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]schedule.ShiftTemplate)}
}

func (m *mockTemplateRepo) Create(_ context.Context, template schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	template.ID = fmt.Sprintf("tmpl-%d", len(m.templates)+1)
	m.templates[template.ID] = template
	return template, nil
}

func (m *mockTemplateRepo) GetByID(_ context.Context, id string) (schedule.ShiftTemplate, error) {
	t, ok := m.templates[id]
	if !ok {
		return schedule.ShiftTemplate{}, schedule.ErrTemplateNotFound
	}
	return t, nil
}

func (m *mockTemplateRepo) List(_ context.Context) ([]schedule.ShiftTemplate, error) {
	out := make([]schedule.ShiftTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTemplateRepo) Update(_ context.Context, template schedule.ShiftTemplate) error {
	if _, ok := m.templates[template.ID]; !ok {
		return schedule.ErrTemplateNotFound
	}
	m.templates[template.ID] = template
	return nil
}

func (m *mockTemplateRepo) Deactivate(_ context.Context, id string) error {
	t, ok := m.templates[id]
	if !ok {
		return schedule.ErrTemplateNotFound
	}
	t.IsActive = false
	m.templates[id] = t
	return nil
}

type mockAssignmentRepo struct {
	assignments map[string]schedule.ShiftAssignment
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]schedule.ShiftAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	for _, a := range m.assignments {
		if a.EmployeeID == assignment.EmployeeID && a.Date.Equal(assignment.Date) {
			return schedule.ShiftAssignment{}, schedule.ErrAssignmentConflict
		}
	}
	assignment.ID = fmt.Sprintf("assign-%d", len(m.assignments)+1)
	m.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (m *mockAssignmentRepo) List(_ context.Context, filter schedule.AssignmentFilter) ([]schedule.ShiftAssignment, error) {
	var out []schedule.ShiftAssignment
	for _, a := range m.assignments {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.assignments[id]; !ok {
		return schedule.ErrAssignmentNotFound
	}
	delete(m.assignments, id)
	return nil
}

type mockEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func newScheduleFixture() (*ScheduleServiceImpl, *mockTemplateRepo, *mockAssignmentRepo) {
	templateRepo := newMockTemplateRepo()
	assignmentRepo := newMockAssignmentRepo()
	employeeRepo := &mockEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Test Employee", HireDate: time.Now().AddDate(-1, 0, 0)},
	}}
	return NewScheduleService(templateRepo, assignmentRepo, employeeRepo, nil), templateRepo, assignmentRepo
}

func TestCreateTemplate_ActiveByDefault(t *testing.T) {
	svc, _, _ := newScheduleFixture()

	created, err := svc.CreateTemplate(context.Background(), schedule.CreateTemplateRequest{
		Name:         "Morning",
		StartTime:    "08:00",
		EndTime:      "16:00",
		BreakMinutes: 60,
	})

	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "Morning", created.Name)
}

func TestAssignShift_OnePerDay(t *testing.T) {
	svc, templateRepo, _ := newScheduleFixture()
	templateRepo.templates["tmpl-1"] = schedule.ShiftTemplate{ID: "tmpl-1", Name: "Morning", IsActive: true}

	req := schedule.AssignShiftRequest{
		EmployeeID: "emp-1",
		TemplateID: "tmpl-1",
		Date:       "2026-09-07",
	}
	_, err := svc.AssignShift(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.AssignShift(context.Background(), req)
	assert.ErrorIs(t, err, schedule.ErrAssignmentConflict)
}

func TestAssignShift_UnknownEmployeeOrTemplate(t *testing.T) {
	svc, templateRepo, _ := newScheduleFixture()
	templateRepo.templates["tmpl-1"] = schedule.ShiftTemplate{ID: "tmpl-1", Name: "Morning", IsActive: true}

	_, err := svc.AssignShift(context.Background(), schedule.AssignShiftRequest{
		EmployeeID: "emp-missing",
		TemplateID: "tmpl-1",
		Date:       "2026-09-07",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.AssignShift(context.Background(), schedule.AssignShiftRequest{
		EmployeeID: "emp-1",
		TemplateID: "tmpl-missing",
		Date:       "2026-09-07",
	})
	assert.ErrorIs(t, err, schedule.ErrTemplateNotFound)
}

func TestDeactivateTemplate(t *testing.T) {
	svc, templateRepo, _ := newScheduleFixture()
	templateRepo.templates["tmpl-1"] = schedule.ShiftTemplate{ID: "tmpl-1", Name: "Night", IsActive: true}

	require.NoError(t, svc.DeactivateTemplate(context.Background(), "tmpl-1"))
	assert.False(t, templateRepo.templates["tmpl-1"].IsActive)

	assert.ErrorIs(t, svc.DeactivateTemplate(context.Background(), "missing"), schedule.ErrTemplateNotFound)
}

func TestListAssignments_FiltersByEmployee(t *testing.T) {
	svc, _, assignmentRepo := newScheduleFixture()
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assignmentRepo.assignments["a-1"] = schedule.ShiftAssignment{ID: "a-1", EmployeeID: "emp-1", TemplateID: "tmpl-1", Date: day}
	assignmentRepo.assignments["a-2"] = schedule.ShiftAssignment{ID: "a-2", EmployeeID: "emp-2", TemplateID: "tmpl-1", Date: day}

	employeeID := "emp-1"
	got, err := svc.ListAssignments(context.Background(), schedule.AssignmentFilter{EmployeeID: &employeeID})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emp-1", got[0].EmployeeID)
}
