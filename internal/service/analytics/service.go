package analytics

import (
	"context"
	"time"

	"github.com/workforcehq/hrms-backend-go/internal/domain/analytics"
)

// AnalyticsServiceImpl is a thin pass-through; the aggregation happens in
// SQL and arrives already shaped for the dashboards.
type AnalyticsServiceImpl struct {
	repo analytics.Repository
}

func NewAnalyticsService(repo analytics.Repository) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{repo: repo}
}

// HeadcountByDepartment implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) HeadcountByDepartment(ctx context.Context) ([]analytics.DepartmentHeadcount, error) {
	return s.repo.HeadcountByDepartment(ctx)
}

// LeaveUtilization implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) LeaveUtilization(ctx context.Context, year int) ([]analytics.LeaveUtilization, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	return s.repo.LeaveUtilization(ctx, year)
}

// PayrollCost implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) PayrollCost(ctx context.Context, year int) ([]analytics.PayrollCost, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	return s.repo.PayrollCost(ctx, year)
}
