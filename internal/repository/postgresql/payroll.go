package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

const payrollRunColumns = `
	id, period_month, period_year, status, employee_count,
	gross_total, tax_withheld, net_total,
	submitted_by, submitted_at, decided_by, decided_at, reject_reason,
	locked_by, locked_at, created_at, updated_at
`

func scanPayrollRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	err := row.Scan(
		&run.ID, &run.PeriodMonth, &run.PeriodYear, &run.Status, &run.EmployeeCount,
		&run.GrossTotal, &run.TaxWithheld, &run.NetTotal,
		&run.SubmittedBy, &run.SubmittedAt, &run.DecidedBy, &run.DecidedAt, &run.RejectReason,
		&run.LockedBy, &run.LockedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

// GetByID implements payroll.RunRepository.
func (r *payrollRunRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE id = $1`

	run, err := scanPayrollRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, err
	}

	return run, nil
}

// List implements payroll.RunRepository.
func (r *payrollRunRepositoryImpl) List(ctx context.Context, filter payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("period_year = $%d", idx))
		args = append(args, *filter.Year)
		idx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_runs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+payrollRunColumns+`
		FROM payroll_runs
		WHERE %s
		ORDER BY period_year DESC, period_month DESC
		LIMIT $%d OFFSET $%d
	`, where, idx, idx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	runs := make([]payroll.PayrollRun, 0)
	for rows.Next() {
		run, err := scanPayrollRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}

	return runs, total, rows.Err()
}

// UpdateStatus implements payroll.RunRepository.
func (r *payrollRunRepositoryImpl) UpdateStatus(ctx context.Context, run payroll.PayrollRun) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $2,
			submitted_by = $3, submitted_at = $4,
			decided_by = $5, decided_at = $6, reject_reason = $7,
			locked_by = $8, locked_at = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		run.ID, run.Status,
		run.SubmittedBy, run.SubmittedAt,
		run.DecidedBy, run.DecidedAt, run.RejectReason,
		run.LockedBy, run.LockedAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `
	p.id, p.run_id, p.employee_id,
	p.base_salary, p.allowances, p.deductions, p.tax_withheld, p.net_pay,
	p.created_at,
	e.full_name AS employee_name,
	e.position
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var slip payroll.Payslip
	err := row.Scan(
		&slip.ID, &slip.RunID, &slip.EmployeeID,
		&slip.BaseSalary, &slip.Allowances, &slip.Deductions, &slip.TaxWithheld, &slip.NetPay,
		&slip.CreatedAt,
		&slip.EmployeeName, &slip.Position,
	)
	return slip, err
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.id = $1
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, err
	}

	return slip, nil
}

// ListByRun implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListByRun(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.run_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payslips := make([]payroll.Payslip, 0)
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, slip)
	}

	return payslips, rows.Err()
}

// ListByEmployee implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		JOIN payroll_runs pr ON p.run_id = pr.id
		WHERE p.employee_id = $1 AND pr.period_year = $2
		ORDER BY pr.period_month
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payslips := make([]payroll.Payslip, 0)
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, slip)
	}

	return payslips, rows.Err()
}
