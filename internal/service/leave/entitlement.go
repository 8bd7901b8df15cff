package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
)

// AssignEntitlement implements leave.ConfigService.
func (s *ConfigService) AssignEntitlement(ctx context.Context, req leave.AssignEntitlementRequest) (leave.Entitlement, error) {
	if err := req.Validate(); err != nil {
		return leave.Entitlement{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Entitlement{}, err
	}
	if _, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.Entitlement{}, err
	}

	existing, err := s.EntitlementRepository.GetByEmployeeAndType(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err == nil {
		update := leave.EntitlementUpdate{
			ID:                existing.ID,
			YearlyEntitlement: &req.YearlyEntitlement,
		}
		if err := s.EntitlementRepository.Update(ctx, update); err != nil {
			return leave.Entitlement{}, fmt.Errorf("failed to update entitlement: %w", err)
		}
		return s.EntitlementRepository.GetByEmployeeAndType(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	}
	if !errors.Is(err, leave.ErrEntitlementNotFound) {
		return leave.Entitlement{}, err
	}

	created, err := s.EntitlementRepository.Create(ctx, leave.Entitlement{
		EmployeeID:        req.EmployeeID,
		LeaveTypeID:       req.LeaveTypeID,
		Year:              req.Year,
		YearlyEntitlement: req.YearlyEntitlement,
		AccruedActual:     decimal.Zero,
		AccruedRounded:    decimal.Zero,
		CarryForward:      decimal.Zero,
		Taken:             decimal.Zero,
		Pending:           decimal.Zero,
	})
	if err != nil {
		return leave.Entitlement{}, fmt.Errorf("failed to create entitlement: %w", err)
	}

	return created, nil
}

// GetEntitlement implements leave.ConfigService.
func (s *ConfigService) GetEntitlement(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Entitlement, error) {
	return s.EntitlementRepository.GetByEmployeeAndType(ctx, employeeID, leaveTypeID, year)
}

// ListEntitlements implements leave.ConfigService.
func (s *ConfigService) ListEntitlements(ctx context.Context, employeeID string, year int) ([]leave.Entitlement, error) {
	return s.EntitlementRepository.ListByEmployee(ctx, employeeID, year)
}

// CreateAdjustment implements leave.ConfigService. A deducting adjustment is
// checked against the current balance before anything is written, and the
// balance write itself carries the same guard at the SQL level, so the
// remaining balance can never go negative. An add for an employee without an
// entitlement row creates one on the fly. The response carries the refreshed
// entitlement and full history.
func (s *ConfigService) CreateAdjustment(ctx context.Context, req leave.CreateAdjustmentRequest) (leave.AdjustmentResult, error) {
	if err := req.Validate(); err != nil {
		return leave.AdjustmentResult{}, err
	}

	adjType := leave.AdjustmentType(req.AdjustmentType)
	year := time.Now().Year()

	ent, err := s.EntitlementRepository.GetByEmployeeAndType(ctx, req.EmployeeID, req.LeaveTypeID, year)
	if err != nil {
		if !errors.Is(err, leave.ErrEntitlementNotFound) {
			return leave.AdjustmentResult{}, err
		}
		if adjType.Deducts() {
			return leave.AdjustmentResult{}, leave.ErrInsufficientBalance
		}
		if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return leave.AdjustmentResult{}, err
		}
		if _, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
			return leave.AdjustmentResult{}, err
		}
		ent, err = s.EntitlementRepository.Create(ctx, leave.Entitlement{
			EmployeeID:     req.EmployeeID,
			LeaveTypeID:    req.LeaveTypeID,
			Year:           year,
			AccruedActual:  decimal.Zero,
			AccruedRounded: decimal.Zero,
			CarryForward:   decimal.Zero,
			Taken:          decimal.Zero,
			Pending:        decimal.Zero,
		})
		if err != nil {
			return leave.AdjustmentResult{}, fmt.Errorf("failed to create entitlement: %w", err)
		}
	}

	delta := req.Amount
	if adjType.Deducts() {
		if ent.Remaining().LessThan(req.Amount) {
			return leave.AdjustmentResult{}, leave.ErrInsufficientBalance
		}
		delta = req.Amount.Neg()
	}

	// The balance write and its history entry land together or not at all.
	var adjustment leave.Adjustment
	err = inTx(ctx, s.db, func(ctx context.Context) error {
		if err := s.EntitlementRepository.ApplyAdjustment(ctx, ent.ID, delta); err != nil {
			return err
		}
		adjustment, err = s.AdjustmentRepository.Append(ctx, leave.Adjustment{
			EmployeeID:     req.EmployeeID,
			LeaveTypeID:    req.LeaveTypeID,
			AdjustmentType: adjType,
			Amount:         req.Amount,
			Reason:         req.Reason,
			HRUserID:       req.HRUserID,
			AppliedAt:      time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to record adjustment: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.AdjustmentResult{}, err
	}

	refreshed, err := s.EntitlementRepository.GetByEmployeeAndType(ctx, req.EmployeeID, req.LeaveTypeID, year)
	if err != nil {
		return leave.AdjustmentResult{}, fmt.Errorf("failed to re-read entitlement: %w", err)
	}

	history, err := s.AdjustmentRepository.ListByEmployee(ctx, req.EmployeeID, &req.LeaveTypeID)
	if err != nil {
		return leave.AdjustmentResult{}, fmt.Errorf("failed to list adjustment history: %w", err)
	}

	s.notifyAdjustment(ctx, req, adjustment)

	return leave.AdjustmentResult{
		Adjustment:  adjustment,
		Entitlement: refreshed,
		History:     history,
	}, nil
}

// notifyAdjustment tells the affected employee their balance changed. A
// notification failure never fails the adjustment.
func (s *ConfigService) notifyAdjustment(ctx context.Context, req leave.CreateAdjustmentRequest, adj leave.Adjustment) {
	if s.notifier == nil {
		return
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	_ = s.notifier.Notify(ctx, *emp.UserID, &req.HRUserID, notification.TypeAdjustmentApplied,
		"Leave balance adjusted",
		fmt.Sprintf("A %s adjustment of %s days was applied: %s", req.AdjustmentType, req.Amount.String(), req.Reason),
		map[string]interface{}{"adjustment_id": adj.ID, "leave_type_id": req.LeaveTypeID})
}

// ListAdjustments implements leave.ConfigService.
func (s *ConfigService) ListAdjustments(ctx context.Context, employeeID string, leaveTypeID *string) ([]leave.Adjustment, error) {
	return s.AdjustmentRepository.ListByEmployee(ctx, employeeID, leaveTypeID)
}
