package analytics

import "context"

type AnalyticsService interface {
	HeadcountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error)
	LeaveUtilization(ctx context.Context, year int) ([]LeaveUtilization, error)
	PayrollCost(ctx context.Context, year int) ([]PayrollCost, error)
}
