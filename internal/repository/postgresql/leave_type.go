package postgresql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.TypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `
	lt.id, lt.code, lt.name, lt.category_id, lt.paid, lt.deductible,
	lt.requires_attachment, lt.attachment_type, lt.eligibility,
	lt.created_at, lt.updated_at,
	lc.name AS category_name
`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	var eligibilityJSON []byte

	err := row.Scan(
		&lt.ID, &lt.Code, &lt.Name, &lt.CategoryID, &lt.Paid, &lt.Deductible,
		&lt.RequiresAttachment, &lt.AttachmentType, &eligibilityJSON,
		&lt.CreatedAt, &lt.UpdatedAt,
		&lt.CategoryName,
	)
	if err != nil {
		return leave.LeaveType{}, err
	}

	if eligibilityJSON != nil {
		var e leave.Eligibility
		if err := json.Unmarshal(eligibilityJSON, &e); err == nil {
			lt.Eligibility = &e
		}
	}

	return lt, nil
}

// Create implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			id, code, name, category_id, paid, deductible,
			requires_attachment, attachment_type, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Code, leaveType.Name, leaveType.CategoryID,
		leaveType.Paid, leaveType.Deductible,
		leaveType.RequiresAttachment, leaveType.AttachmentType,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, err
	}

	return leaveType, nil
}

// GetByID implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types lt
		JOIN leave_categories lc ON lt.category_id = lc.id
		WHERE lt.id = $1
	`

	lt, err := scanLeaveType(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

// GetByCode implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types lt
		JOIN leave_categories lc ON lt.category_id = lc.id
		WHERE lt.code = $1
	`

	lt, err := scanLeaveType(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

// List implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types lt
		JOIN leave_categories lc ON lt.category_id = lc.id
		ORDER BY lt.code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, rows.Err()
}

// Update implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET name = $2, category_id = $3, paid = $4, deductible = $5,
			requires_attachment = $6, attachment_type = $7, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.CategoryID,
		leaveType.Paid, leaveType.Deductible,
		leaveType.RequiresAttachment, leaveType.AttachmentType,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrTypeNotFound
	}

	return nil
}

// SetEligibility implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) SetEligibility(ctx context.Context, id string, eligibility leave.Eligibility) error {
	q := GetQuerier(ctx, r.db)

	eligibilityJSON, err := json.Marshal(eligibility)
	if err != nil {
		return err
	}

	query := `
		UPDATE leave_types
		SET eligibility = $2, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id, eligibilityJSON)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrTypeNotFound
	}

	return nil
}

// Delete implements leave.TypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrTypeNotFound
	}

	return nil
}
