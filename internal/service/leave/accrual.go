package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

// RunAccrual implements leave.ConfigService. One run walks every policy
// using the requested accrual method and adds one period's rate to every
// eligible entitlement. An entitlement already accrued in the reference
// period is skipped, so re-running the same period is safe.
func (s *ConfigService) RunAccrual(ctx context.Context, req leave.RunAccrualRequest) (leave.RunResult, error) {
	if err := req.Validate(); err != nil {
		return leave.RunResult{}, err
	}

	refDate, _ := validator.IsValidDate(req.ReferenceDate)
	method := leave.AccrualMethod(req.Method)

	policies, err := s.PolicyRepository.ListByMethod(ctx, method)
	if err != nil {
		return leave.RunResult{}, fmt.Errorf("failed to list policies: %w", err)
	}

	var result leave.RunResult
	for _, policy := range policies {
		leaveType, err := s.TypeRepository.GetByID(ctx, policy.LeaveTypeID)
		if err != nil {
			return result, err
		}

		rate := policy.PeriodRate()
		rule := policy.RoundingRule
		if req.RoundingRule != nil {
			rule = leave.RoundingRule(*req.RoundingRule)
		}

		entitlements, err := s.EntitlementRepository.ListByLeaveType(ctx, policy.LeaveTypeID, refDate.Year())
		if err != nil {
			return result, fmt.Errorf("failed to list entitlements: %w", err)
		}

		for _, ent := range entitlements {
			if accruedThisPeriod(ent, method, refDate) {
				result.Skipped++
				continue
			}

			emp, err := s.EmployeeRepository.GetByID(ctx, ent.EmployeeID)
			if err != nil {
				return result, err
			}
			if !emp.IsActive() {
				result.Skipped++
				continue
			}
			if leaveType.Eligibility != nil &&
				!leaveType.Eligibility.Allows(emp.Position, string(emp.ContractType), string(emp.EmploymentType), emp.TenureMonths(refDate)) {
				result.Skipped++
				continue
			}

			accruedActual := ent.AccruedActual.Add(rate)
			// The yearly entitlement caps accrual when one is assigned.
			if ent.YearlyEntitlement.IsPositive() && accruedActual.GreaterThan(ent.YearlyEntitlement) {
				accruedActual = ent.YearlyEntitlement
			}
			accruedRounded := rule.Apply(accruedActual)

			update := leave.EntitlementUpdate{
				ID:              ent.ID,
				AccruedActual:   &accruedActual,
				AccruedRounded:  &accruedRounded,
				LastAccrualDate: &refDate,
			}
			if err := s.EntitlementRepository.Update(ctx, update); err != nil {
				return result, fmt.Errorf("failed to update entitlement %s: %w", ent.ID, err)
			}
			result.Processed++
		}
	}

	return result, nil
}

// accruedThisPeriod reports whether the entitlement already received an
// accrual for the period containing refDate.
func accruedThisPeriod(ent leave.Entitlement, method leave.AccrualMethod, refDate time.Time) bool {
	if ent.LastAccrualDate == nil {
		return false
	}
	last := *ent.LastAccrualDate
	switch method {
	case leave.AccrualMonthly:
		return last.Year() == refDate.Year() && last.Month() == refDate.Month()
	default:
		return last.Year() == refDate.Year()
	}
}

// RunCarryForward implements leave.ConfigService. Unspent balance from the
// reference year rolls into the following year's entitlement, capped by the
// policy (or the request override) and stamped with an expiry date.
func (s *ConfigService) RunCarryForward(ctx context.Context, req leave.CarryForwardRequest) (leave.RunResult, error) {
	if err := req.Validate(); err != nil {
		return leave.RunResult{}, err
	}

	refDate, _ := validator.IsValidDate(req.ReferenceDate)
	fromYear := refDate.Year()
	// A January 1 reference closes the year that just ended, so the nightly
	// job running on New Year's Day carries the old year, not the new one.
	if refDate.Month() == time.January && refDate.Day() == 1 {
		fromYear--
	}

	entitlements, err := s.EntitlementRepository.ListByYear(ctx, fromYear)
	if err != nil {
		return leave.RunResult{}, fmt.Errorf("failed to list entitlements: %w", err)
	}

	var result leave.RunResult
	for _, ent := range entitlements {
		policy, err := s.PolicyRepository.GetByLeaveType(ctx, ent.LeaveTypeID)
		if err != nil || !policy.CarryForwardAllowed {
			result.Skipped++
			continue
		}

		remaining := ent.Remaining()
		if !remaining.IsPositive() {
			result.Skipped++
			continue
		}

		capDays := req.CapDays
		if capDays == nil {
			capDays = policy.MaxCarryForward
		}
		carried := remaining
		if capDays != nil && carried.GreaterThan(*capDays) {
			carried = *capDays
		}

		expiryMonths := req.ExpiryMonths
		if expiryMonths == nil {
			expiryMonths = policy.ExpiryAfterMonths
		}
		var expiry *time.Time
		if expiryMonths != nil {
			e := refDate.AddDate(0, *expiryMonths, 0)
			expiry = &e
		}

		next, err := s.EntitlementRepository.GetByEmployeeAndType(ctx, ent.EmployeeID, ent.LeaveTypeID, fromYear+1)
		if err != nil {
			next, err = s.EntitlementRepository.Create(ctx, leave.Entitlement{
				EmployeeID:        ent.EmployeeID,
				LeaveTypeID:       ent.LeaveTypeID,
				Year:              fromYear + 1,
				YearlyEntitlement: ent.YearlyEntitlement,
				AccruedActual:     decimal.Zero,
				AccruedRounded:    decimal.Zero,
				CarryForward:      decimal.Zero,
				Taken:             decimal.Zero,
				Pending:           decimal.Zero,
			})
			if err != nil {
				return result, fmt.Errorf("failed to create next-year entitlement: %w", err)
			}
		}

		update := leave.EntitlementUpdate{
			ID:                 next.ID,
			CarryForward:       &carried,
			CarryForwardExpiry: expiry,
		}
		if err := s.EntitlementRepository.Update(ctx, update); err != nil {
			return result, fmt.Errorf("failed to write carry-forward: %w", err)
		}
		result.Processed++
	}

	return result, nil
}

// ResetEntitlements implements leave.ConfigService. Accrued, taken and
// pending balances for the year are zeroed while yearly entitlements and
// the adjustment history survive.
func (s *ConfigService) ResetEntitlements(ctx context.Context, req leave.ResetEntitlementsRequest) (leave.RunResult, error) {
	if err := req.Validate(); err != nil {
		return leave.RunResult{}, err
	}

	count, err := s.EntitlementRepository.ResetYear(ctx, req.Year)
	if err != nil {
		return leave.RunResult{}, fmt.Errorf("failed to reset entitlements: %w", err)
	}

	return leave.RunResult{Processed: int(count)}, nil
}
