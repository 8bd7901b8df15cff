package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.PolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

const leavePolicyColumns = `
	lp.id, lp.leave_type_id, lp.accrual_method, lp.monthly_rate, lp.yearly_rate,
	lp.carry_forward_allowed, lp.max_carry_forward, lp.expiry_after_months,
	lp.rounding_rule, lp.min_notice_days, lp.max_consecutive_days,
	lp.created_at, lp.updated_at,
	lt.name AS leave_type_name
`

func scanLeavePolicy(row pgx.Row) (leave.LeavePolicy, error) {
	var p leave.LeavePolicy
	err := row.Scan(
		&p.ID, &p.LeaveTypeID, &p.AccrualMethod, &p.MonthlyRate, &p.YearlyRate,
		&p.CarryForwardAllowed, &p.MaxCarryForward, &p.ExpiryAfterMonths,
		&p.RoundingRule, &p.MinNoticeDays, &p.MaxConsecutiveDays,
		&p.CreatedAt, &p.UpdatedAt,
		&p.LeaveTypeName,
	)
	return p, err
}

// Create implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) Create(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_policies (
			id, leave_type_id, accrual_method, monthly_rate, yearly_rate,
			carry_forward_allowed, max_carry_forward, expiry_after_months,
			rounding_rule, min_notice_days, max_consecutive_days,
			created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.LeaveTypeID, policy.AccrualMethod, policy.MonthlyRate, policy.YearlyRate,
		policy.CarryForwardAllowed, policy.MaxCarryForward, policy.ExpiryAfterMonths,
		policy.RoundingRule, policy.MinNoticeDays, policy.MaxConsecutiveDays,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return leave.LeavePolicy{}, err
	}

	return policy, nil
}

// GetByID implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leavePolicyColumns + `
		FROM leave_policies lp
		JOIN leave_types lt ON lp.leave_type_id = lt.id
		WHERE lp.id = $1
	`

	p, err := scanLeavePolicy(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.LeavePolicy{}, err
	}

	return p, nil
}

// GetByLeaveType implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) GetByLeaveType(ctx context.Context, leaveTypeID string) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leavePolicyColumns + `
		FROM leave_policies lp
		JOIN leave_types lt ON lp.leave_type_id = lt.id
		WHERE lp.leave_type_id = $1
	`

	p, err := scanLeavePolicy(q.QueryRow(ctx, query, leaveTypeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.LeavePolicy{}, err
	}

	return p, nil
}

// List implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) List(ctx context.Context) ([]leave.LeavePolicy, error) {
	return r.list(ctx, "", nil)
}

// ListByMethod implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) ListByMethod(ctx context.Context, method leave.AccrualMethod) ([]leave.LeavePolicy, error) {
	return r.list(ctx, "WHERE lp.accrual_method = $1", []interface{}{string(method)})
}

func (r *leavePolicyRepositoryImpl) list(ctx context.Context, where string, args []interface{}) ([]leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leavePolicyColumns + `
		FROM leave_policies lp
		JOIN leave_types lt ON lp.leave_type_id = lt.id
		` + where + `
		ORDER BY lt.code
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := make([]leave.LeavePolicy, 0)
	for rows.Next() {
		p, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}

// Update implements leave.PolicyRepository. Only the fields present in the
// request are written.
func (r *leavePolicyRepositoryImpl) Update(ctx context.Context, req leave.UpdatePolicyRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	idx := 2

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.AccrualMethod != nil {
		addSet("accrual_method", *req.AccrualMethod)
	}
	if req.MonthlyRate != nil {
		addSet("monthly_rate", *req.MonthlyRate)
	}
	if req.YearlyRate != nil {
		addSet("yearly_rate", *req.YearlyRate)
	}
	if req.CarryForwardAllowed != nil {
		addSet("carry_forward_allowed", *req.CarryForwardAllowed)
	}
	if req.MaxCarryForward != nil {
		addSet("max_carry_forward", *req.MaxCarryForward)
	}
	if req.ExpiryAfterMonths != nil {
		addSet("expiry_after_months", *req.ExpiryAfterMonths)
	}
	if req.RoundingRule != nil {
		addSet("rounding_rule", *req.RoundingRule)
	}
	if req.MinNoticeDays != nil {
		addSet("min_notice_days", *req.MinNoticeDays)
	}
	if req.MaxConsecutiveDays != nil {
		addSet("max_consecutive_days", *req.MaxConsecutiveDays)
	}

	query := fmt.Sprintf(`UPDATE leave_policies SET %s WHERE id = $1`, strings.Join(setClauses, ", "))

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrPolicyNotFound
	}

	return nil
}

// Delete implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_policies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrPolicyNotFound
	}

	return nil
}
