package postgresql

import (
	"context"

	"github.com/workforcehq/hrms-backend-go/internal/domain/analytics"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.Repository {
	return &analyticsRepositoryImpl{db: db}
}

// HeadcountByDepartment implements analytics.Repository.
func (r *analyticsRepositoryImpl) HeadcountByDepartment(ctx context.Context) ([]analytics.DepartmentHeadcount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name,
			   COUNT(e.id) FILTER (WHERE e.terminated_at IS NULL) AS headcount,
			   COUNT(DISTINCT lr.employee_id) FILTER (
				   WHERE lr.status = 'approved'
				     AND CURRENT_DATE BETWEEN lr.start_date AND lr.end_date
			   ) AS on_leave_today
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		LEFT JOIN leave_requests lr ON lr.employee_id = e.id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]analytics.DepartmentHeadcount, 0)
	for rows.Next() {
		var row analytics.DepartmentHeadcount
		if err := rows.Scan(&row.DepartmentID, &row.DepartmentName, &row.Headcount, &row.OnLeaveToday); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// LeaveUtilization implements analytics.Repository.
func (r *analyticsRepositoryImpl) LeaveUtilization(ctx context.Context, year int) ([]analytics.LeaveUtilization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.name,
			   COALESCE(SUM(en.accrued_rounded), 0) AS total_accrued,
			   COALESCE(SUM(en.taken), 0) AS total_taken,
			   COALESCE(SUM(en.pending), 0) AS total_pending,
			   CASE WHEN COALESCE(SUM(en.accrued_rounded), 0) = 0 THEN 0
					ELSE ROUND(SUM(en.taken) / SUM(en.accrued_rounded), 4)
			   END AS utilization
		FROM leave_types lt
		LEFT JOIN entitlements en ON en.leave_type_id = lt.id AND en.year = $1
		GROUP BY lt.id, lt.name
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]analytics.LeaveUtilization, 0)
	for rows.Next() {
		var row analytics.LeaveUtilization
		if err := rows.Scan(
			&row.LeaveTypeID, &row.LeaveTypeName,
			&row.TotalAccrued, &row.TotalTaken, &row.TotalPending, &row.Utilization,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// PayrollCost implements analytics.Repository. Only approved and locked
// runs count toward cost.
func (r *analyticsRepositoryImpl) PayrollCost(ctx context.Context, year int) ([]analytics.PayrollCost, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT period_month, period_year, gross_total, tax_withheld, net_total
		FROM payroll_runs
		WHERE period_year = $1 AND status IN ('approved', 'locked')
		ORDER BY period_month
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]analytics.PayrollCost, 0)
	for rows.Next() {
		var row analytics.PayrollCost
		if err := rows.Scan(&row.PeriodMonth, &row.PeriodYear, &row.GrossTotal, &row.TaxWithheld, &row.NetTotal); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
