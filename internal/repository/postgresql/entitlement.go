package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type entitlementRepositoryImpl struct {
	db *database.DB
}

func NewEntitlementRepository(db *database.DB) leave.EntitlementRepository {
	return &entitlementRepositoryImpl{db: db}
}

const entitlementColumns = `
	en.id, en.employee_id, en.leave_type_id, en.year,
	en.yearly_entitlement, en.accrued_actual, en.accrued_rounded,
	en.carry_forward, en.carry_forward_expiry, en.taken, en.pending,
	en.last_accrual_date, en.created_at, en.updated_at,
	e.full_name AS employee_name,
	lt.name AS leave_type_name
`

const entitlementJoins = `
	FROM entitlements en
	JOIN employees e ON en.employee_id = e.id
	JOIN leave_types lt ON en.leave_type_id = lt.id
`

func scanEntitlement(row pgx.Row) (leave.Entitlement, error) {
	var en leave.Entitlement
	err := row.Scan(
		&en.ID, &en.EmployeeID, &en.LeaveTypeID, &en.Year,
		&en.YearlyEntitlement, &en.AccruedActual, &en.AccruedRounded,
		&en.CarryForward, &en.CarryForwardExpiry, &en.Taken, &en.Pending,
		&en.LastAccrualDate, &en.CreatedAt, &en.UpdatedAt,
		&en.EmployeeName, &en.LeaveTypeName,
	)
	return en, err
}

// Create implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) Create(ctx context.Context, entitlement leave.Entitlement) (leave.Entitlement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO entitlements (
			id, employee_id, leave_type_id, year,
			yearly_entitlement, accrued_actual, accrued_rounded,
			carry_forward, carry_forward_expiry, taken, pending,
			created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entitlement.EmployeeID, entitlement.LeaveTypeID, entitlement.Year,
		entitlement.YearlyEntitlement, entitlement.AccruedActual, entitlement.AccruedRounded,
		entitlement.CarryForward, entitlement.CarryForwardExpiry,
		entitlement.Taken, entitlement.Pending,
	).Scan(&entitlement.ID, &entitlement.CreatedAt, &entitlement.UpdatedAt)
	if err != nil {
		return leave.Entitlement{}, err
	}

	return entitlement, nil
}

// GetByEmployeeAndType implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Entitlement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entitlementColumns + entitlementJoins + `
		WHERE en.employee_id = $1 AND en.leave_type_id = $2 AND en.year = $3
	`

	en, err := scanEntitlement(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Entitlement{}, leave.ErrEntitlementNotFound
		}
		return leave.Entitlement{}, err
	}

	return en, nil
}

// ListByEmployee implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Entitlement, error) {
	return r.list(ctx, "WHERE en.employee_id = $1 AND en.year = $2", employeeID, year)
}

// ListByLeaveType implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) ListByLeaveType(ctx context.Context, leaveTypeID string, year int) ([]leave.Entitlement, error) {
	return r.list(ctx, "WHERE en.leave_type_id = $1 AND en.year = $2", leaveTypeID, year)
}

// ListByYear implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) ListByYear(ctx context.Context, year int) ([]leave.Entitlement, error) {
	return r.list(ctx, "WHERE en.year = $1", year)
}

func (r *entitlementRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]leave.Entitlement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entitlementColumns + entitlementJoins + where + `
		ORDER BY e.full_name, lt.code
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entitlements := make([]leave.Entitlement, 0)
	for rows.Next() {
		en, err := scanEntitlement(rows)
		if err != nil {
			return nil, err
		}
		entitlements = append(entitlements, en)
	}

	return entitlements, rows.Err()
}

// Update implements leave.EntitlementRepository. Only non-nil fields of the
// update are written.
func (r *entitlementRepositoryImpl) Update(ctx context.Context, update leave.EntitlementUpdate) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{update.ID}
	idx := 2

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.YearlyEntitlement != nil {
		addSet("yearly_entitlement", *update.YearlyEntitlement)
	}
	if update.AccruedActual != nil {
		addSet("accrued_actual", *update.AccruedActual)
	}
	if update.AccruedRounded != nil {
		addSet("accrued_rounded", *update.AccruedRounded)
	}
	if update.CarryForward != nil {
		addSet("carry_forward", *update.CarryForward)
	}
	if update.CarryForwardExpiry != nil {
		addSet("carry_forward_expiry", *update.CarryForwardExpiry)
	}
	if update.Taken != nil {
		addSet("taken", *update.Taken)
	}
	if update.Pending != nil {
		addSet("pending", *update.Pending)
	}
	if update.LastAccrualDate != nil {
		addSet("last_accrual_date", *update.LastAccrualDate)
	}

	query := fmt.Sprintf(`UPDATE entitlements SET %s WHERE id = $1`, strings.Join(setClauses, ", "))

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrEntitlementNotFound
	}

	return nil
}

// ApplyAdjustment implements leave.EntitlementRepository. The WHERE clause
// repeats the balance check, so a concurrent write can never drive the
// remaining balance below zero.
func (r *entitlementRepositoryImpl) ApplyAdjustment(ctx context.Context, id string, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entitlements
		SET accrued_actual = accrued_actual + $2,
			accrued_rounded = accrued_rounded + $2,
			updated_at = NOW()
		WHERE id = $1
		  AND accrued_rounded + $2 + carry_forward - taken - pending >= 0
	`

	commandTag, err := q.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// AddPending implements leave.EntitlementRepository. The hold fails at the
// SQL level when the remaining balance would go negative.
func (r *entitlementRepositoryImpl) AddPending(ctx context.Context, id string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entitlements
		SET pending = pending + $2, updated_at = NOW()
		WHERE id = $1
		  AND accrued_rounded + carry_forward - taken - pending - $2 >= 0
	`

	commandTag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// ReleasePending implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) ReleasePending(ctx context.Context, id string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entitlements
		SET pending = GREATEST(pending - $2, 0), updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrEntitlementNotFound
	}

	return nil
}

// MovePendingToTaken implements leave.EntitlementRepository.
func (r *entitlementRepositoryImpl) MovePendingToTaken(ctx context.Context, id string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entitlements
		SET pending = GREATEST(pending - $2, 0),
			taken = taken + $2,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrEntitlementNotFound
	}

	return nil
}

// ResetYear implements leave.EntitlementRepository. Balances are zeroed for
// a fresh cycle; the yearly entitlement assignment survives.
func (r *entitlementRepositoryImpl) ResetYear(ctx context.Context, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entitlements
		SET accrued_actual = 0, accrued_rounded = 0,
			carry_forward = 0, carry_forward_expiry = NULL,
			taken = 0, pending = 0, last_accrual_date = NULL,
			updated_at = NOW()
		WHERE year = $1
	`

	commandTag, err := q.Exec(ctx, query, year)
	if err != nil {
		return 0, err
	}

	return commandTag.RowsAffected(), nil
}
