package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/performance"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type appraisalRepositoryImpl struct {
	db *database.DB
}

func NewAppraisalRepository(db *database.DB) performance.AppraisalRepository {
	return &appraisalRepositoryImpl{db: db}
}

const appraisalColumns = `
	a.id, a.employee_id, a.period, a.score, a.rating,
	a.reviewer_id, a.comments, a.finalized_at, a.created_at,
	e.full_name AS employee_name
`

func scanAppraisal(row pgx.Row) (performance.Appraisal, error) {
	var a performance.Appraisal
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Period, &a.Score, &a.Rating,
		&a.ReviewerID, &a.Comments, &a.FinalizedAt, &a.CreatedAt,
		&a.EmployeeName,
	)
	return a, err
}

// GetByID implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Appraisal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + appraisalColumns + `
		FROM appraisals a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.id = $1
	`

	a, err := scanAppraisal(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.Appraisal{}, performance.ErrAppraisalNotFound
		}
		return performance.Appraisal{}, err
	}

	return a, nil
}

// ListByEmployee implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]performance.Appraisal, error) {
	return r.list(ctx, "WHERE a.employee_id = $1", employeeID)
}

// ListByPeriod implements performance.AppraisalRepository.
func (r *appraisalRepositoryImpl) ListByPeriod(ctx context.Context, period string) ([]performance.Appraisal, error) {
	return r.list(ctx, "WHERE a.period = $1", period)
}

func (r *appraisalRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]performance.Appraisal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + appraisalColumns + `
		FROM appraisals a
		JOIN employees e ON a.employee_id = e.id
		` + where + `
		ORDER BY a.finalized_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appraisals := make([]performance.Appraisal, 0)
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		appraisals = append(appraisals, a)
	}

	return appraisals, rows.Err()
}

type disputeRepositoryImpl struct {
	db *database.DB
}

func NewDisputeRepository(db *database.DB) performance.DisputeRepository {
	return &disputeRepositoryImpl{db: db}
}

const disputeColumns = `
	d.id, d.appraisal_id, d.employee_id, d.grounds, d.status,
	d.assignee_id, d.resolution, d.resolved_at, d.created_at, d.updated_at,
	e.full_name AS employee_name,
	a.period AS appraisal_period
`

func scanDispute(row pgx.Row) (performance.Dispute, error) {
	var d performance.Dispute
	err := row.Scan(
		&d.ID, &d.AppraisalID, &d.EmployeeID, &d.Grounds, &d.Status,
		&d.AssigneeID, &d.Resolution, &d.ResolvedAt, &d.CreatedAt, &d.UpdatedAt,
		&d.EmployeeName, &d.AppraisalPeriod,
	)
	return d, err
}

// Create implements performance.DisputeRepository.
func (r *disputeRepositoryImpl) Create(ctx context.Context, dispute performance.Dispute) (performance.Dispute, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO appraisal_disputes (
			id, appraisal_id, employee_id, grounds, status, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		dispute.AppraisalID, dispute.EmployeeID, dispute.Grounds, dispute.Status,
	).Scan(&dispute.ID, &dispute.CreatedAt, &dispute.UpdatedAt)
	if err != nil {
		return performance.Dispute{}, err
	}

	return dispute, nil
}

// GetByID implements performance.DisputeRepository.
func (r *disputeRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Dispute, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + disputeColumns + `
		FROM appraisal_disputes d
		JOIN employees e ON d.employee_id = e.id
		JOIN appraisals a ON d.appraisal_id = a.id
		WHERE d.id = $1
	`

	d, err := scanDispute(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.Dispute{}, performance.ErrDisputeNotFound
		}
		return performance.Dispute{}, err
	}

	return d, nil
}

// List implements performance.DisputeRepository.
func (r *disputeRepositoryImpl) List(ctx context.Context, filter performance.DisputeFilter) ([]performance.Dispute, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("d.employee_id = $%d", idx))
		args = append(args, *filter.EmployeeID)
		idx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM appraisal_disputes d WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+disputeColumns+`
		FROM appraisal_disputes d
		JOIN employees e ON d.employee_id = e.id
		JOIN appraisals a ON d.appraisal_id = a.id
		WHERE %s
		ORDER BY d.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, idx, idx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	disputes := make([]performance.Dispute, 0)
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, 0, err
		}
		disputes = append(disputes, d)
	}

	return disputes, total, rows.Err()
}

// UpdateStatus implements performance.DisputeRepository.
func (r *disputeRepositoryImpl) UpdateStatus(ctx context.Context, dispute performance.Dispute) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appraisal_disputes
		SET status = $2, assignee_id = $3, resolution = $4, resolved_at = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		dispute.ID, dispute.Status, dispute.AssigneeID,
		dispute.Resolution, dispute.ResolvedAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return performance.ErrDisputeNotFound
	}

	return nil
}
