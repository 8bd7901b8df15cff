package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workforcehq/hrms-backend-go/internal/domain/schedule"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type shiftTemplateRepositoryImpl struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) schedule.TemplateRepository {
	return &shiftTemplateRepositoryImpl{db: db}
}

// Create implements schedule.TemplateRepository.
func (r *shiftTemplateRepositoryImpl) Create(ctx context.Context, template schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_templates (
			id, name, start_time, end_time, break_minutes, is_active, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		template.Name, template.StartTime, template.EndTime,
		template.BreakMinutes, template.IsActive,
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}

	return template, nil
}

// GetByID implements schedule.TemplateRepository.
func (r *shiftTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	var template schedule.ShiftTemplate
	err := q.QueryRow(ctx, `
		SELECT id, name, start_time, end_time, break_minutes, is_active, created_at, updated_at
		FROM shift_templates
		WHERE id = $1
	`, id).Scan(
		&template.ID, &template.Name, &template.StartTime, &template.EndTime,
		&template.BreakMinutes, &template.IsActive, &template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftTemplate{}, schedule.ErrTemplateNotFound
		}
		return schedule.ShiftTemplate{}, err
	}

	return template, nil
}

// List implements schedule.TemplateRepository.
func (r *shiftTemplateRepositoryImpl) List(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, start_time, end_time, break_minutes, is_active, created_at, updated_at
		FROM shift_templates
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]schedule.ShiftTemplate, 0)
	for rows.Next() {
		var template schedule.ShiftTemplate
		if err := rows.Scan(
			&template.ID, &template.Name, &template.StartTime, &template.EndTime,
			&template.BreakMinutes, &template.IsActive, &template.CreatedAt, &template.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}

// Update implements schedule.TemplateRepository.
func (r *shiftTemplateRepositoryImpl) Update(ctx context.Context, template schedule.ShiftTemplate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET name = $2, start_time = $3, end_time = $4, break_minutes = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		template.ID, template.Name, template.StartTime, template.EndTime,
		template.BreakMinutes, template.IsActive,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrTemplateNotFound
	}

	return nil
}

// Deactivate implements schedule.TemplateRepository.
func (r *shiftTemplateRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE shift_templates SET is_active = FALSE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrTemplateNotFound
	}

	return nil
}

type shiftAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &shiftAssignmentRepositoryImpl{db: db}
}

// Create implements schedule.AssignmentRepository. The unique index on
// (employee_id, date) surfaces as ErrAssignmentConflict.
func (r *shiftAssignmentRepositoryImpl) Create(ctx context.Context, assignment schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (id, employee_id, template_id, date, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		assignment.EmployeeID, assignment.TemplateID, assignment.Date,
	).Scan(&assignment.ID, &assignment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.ShiftAssignment{}, schedule.ErrAssignmentConflict
		}
		return schedule.ShiftAssignment{}, err
	}

	return assignment, nil
}

// List implements schedule.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) List(ctx context.Context, filter schedule.AssignmentFilter) ([]schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("sa.employee_id = $%d", idx))
		args = append(args, *filter.EmployeeID)
		idx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("sa.date >= $%d", idx))
		args = append(args, *filter.From)
		idx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("sa.date <= $%d", idx))
		args = append(args, *filter.To)
		idx++
	}

	query := fmt.Sprintf(`
		SELECT sa.id, sa.employee_id, sa.template_id, sa.date, sa.created_at,
			   e.full_name AS employee_name,
			   st.name AS template_name,
			   st.start_time, st.end_time
		FROM shift_assignments sa
		JOIN employees e ON sa.employee_id = e.id
		JOIN shift_templates st ON sa.template_id = st.id
		WHERE %s
		ORDER BY sa.date, e.full_name
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]schedule.ShiftAssignment, 0)
	for rows.Next() {
		var a schedule.ShiftAssignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.TemplateID, &a.Date, &a.CreatedAt,
			&a.EmployeeName, &a.TemplateName, &a.StartTime, &a.EndTime,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// Delete implements schedule.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrAssignmentNotFound
	}

	return nil
}
