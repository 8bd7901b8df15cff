package postgresql

import (
	"context"

	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type adjustmentRepositoryImpl struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) leave.AdjustmentRepository {
	return &adjustmentRepositoryImpl{db: db}
}

// Append implements leave.AdjustmentRepository. Rows are never updated or
// deleted; the table is the audit trail.
func (r *adjustmentRepositoryImpl) Append(ctx context.Context, adjustment leave.Adjustment) (leave.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_adjustments (
			id, employee_id, leave_type_id, adjustment_type,
			amount, reason, hr_user_id, applied_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, applied_at
	`

	err := q.QueryRow(ctx, query,
		adjustment.EmployeeID, adjustment.LeaveTypeID, adjustment.AdjustmentType,
		adjustment.Amount, adjustment.Reason, adjustment.HRUserID,
	).Scan(&adjustment.ID, &adjustment.AppliedAt)
	if err != nil {
		return leave.Adjustment{}, err
	}

	return adjustment, nil
}

// ListByEmployee implements leave.AdjustmentRepository. Newest first.
func (r *adjustmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, leaveTypeID *string) ([]leave.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.employee_id, la.leave_type_id, la.adjustment_type,
			   la.amount, la.reason, la.hr_user_id, la.applied_at,
			   lt.name AS leave_type_name
		FROM leave_adjustments la
		JOIN leave_types lt ON la.leave_type_id = lt.id
		WHERE la.employee_id = $1
		  AND ($2::uuid IS NULL OR la.leave_type_id = $2)
		ORDER BY la.applied_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, leaveTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := make([]leave.Adjustment, 0)
	for rows.Next() {
		var a leave.Adjustment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.LeaveTypeID, &a.AdjustmentType,
			&a.Amount, &a.Reason, &a.HRUserID, &a.AppliedAt,
			&a.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}

	return adjustments, rows.Err()
}
