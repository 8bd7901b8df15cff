package analytics

import "context"

// Repository runs the aggregate queries; all arithmetic stays in SQL.
type Repository interface {
	HeadcountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error)
	LeaveUtilization(ctx context.Context, year int) ([]LeaveUtilization, error)
	PayrollCost(ctx context.Context, year int) ([]PayrollCost, error)
}
