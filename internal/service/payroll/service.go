package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
)

// PayrollServiceImpl moves payroll runs through their review lifecycle.
// Every status change goes through the transitions table, so an illegal
// move fails before anything is written.
type PayrollServiceImpl struct {
	runRepo     payroll.RunRepository
	payslipRepo payroll.PayslipRepository
	userRepo    user.UserRepository
	notifier    notification.NotificationService
}

func NewPayrollService(
	runRepo payroll.RunRepository,
	payslipRepo payroll.PayslipRepository,
	userRepo user.UserRepository,
	notifier notification.NotificationService,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		runRepo:     runRepo,
		payslipRepo: payslipRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// ListRuns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.runRepo.List(ctx, filter)
}

// GetRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.PayrollRun, error) {
	return s.runRepo.GetByID(ctx, id)
}

// SubmitForApproval implements payroll.PayrollService. Draft and rejected
// runs can be (re)submitted to finance.
func (s *PayrollServiceImpl) SubmitForApproval(ctx context.Context, runID, userID string) error {
	run, err := s.transition(ctx, runID, payroll.StatusPendingApproval, func(run *payroll.PayrollRun) {
		now := time.Now()
		run.SubmittedBy = &userID
		run.SubmittedAt = &now
		run.RejectReason = nil
	})
	if err != nil {
		return err
	}

	s.notifyRoles(ctx, []user.Role{user.RoleFinanceStaff}, userID, notification.TypePayrollSubmitted,
		"Payroll run awaiting approval",
		fmt.Sprintf("Payroll run for %04d-%02d was submitted for finance approval", run.PeriodYear, run.PeriodMonth),
		run.ID)
	return nil
}

// ApproveRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) ApproveRun(ctx context.Context, runID, userID string) error {
	run, err := s.transition(ctx, runID, payroll.StatusApproved, func(run *payroll.PayrollRun) {
		now := time.Now()
		run.DecidedBy = &userID
		run.DecidedAt = &now
	})
	if err != nil {
		return err
	}

	s.notifySubmitter(ctx, run, userID, notification.TypePayrollApproved,
		"Payroll run approved",
		fmt.Sprintf("Payroll run for %04d-%02d was approved by finance", run.PeriodYear, run.PeriodMonth))
	return nil
}

// RejectRun implements payroll.PayrollService. A rejected run goes back to
// payroll staff with the reason and can be resubmitted after correction.
func (s *PayrollServiceImpl) RejectRun(ctx context.Context, req payroll.RejectRunRequest, userID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	run, err := s.transition(ctx, req.RunID, payroll.StatusRejected, func(run *payroll.PayrollRun) {
		now := time.Now()
		run.DecidedBy = &userID
		run.DecidedAt = &now
		run.RejectReason = &req.Reason
	})
	if err != nil {
		return err
	}

	s.notifySubmitter(ctx, run, userID, notification.TypePayrollRejected,
		"Payroll run rejected",
		fmt.Sprintf("Payroll run for %04d-%02d was rejected: %s", run.PeriodYear, run.PeriodMonth, req.Reason))
	return nil
}

// LockRun implements payroll.PayrollService. Locked is terminal.
func (s *PayrollServiceImpl) LockRun(ctx context.Context, runID, userID string) error {
	_, err := s.transition(ctx, runID, payroll.StatusLocked, func(run *payroll.PayrollRun) {
		now := time.Now()
		run.LockedBy = &userID
		run.LockedAt = &now
	})
	return err
}

// transition loads the run, validates the move against the status table,
// applies the mutation and persists it.
func (s *PayrollServiceImpl) transition(ctx context.Context, runID string, to payroll.RunStatus, mutate func(*payroll.PayrollRun)) (payroll.PayrollRun, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	if run.Status == payroll.StatusLocked {
		return payroll.PayrollRun{}, payroll.ErrRunLocked
	}
	if !payroll.CanTransition(run.Status, to) {
		return payroll.PayrollRun{}, payroll.ErrInvalidTransition
	}

	run.Status = to
	mutate(&run)

	if err := s.runRepo.UpdateStatus(ctx, run); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to update payroll run status: %w", err)
	}

	return run, nil
}

func (s *PayrollServiceImpl) notifySubmitter(ctx context.Context, run payroll.PayrollRun, actorID string, t notification.NotificationType, title, message string) {
	if s.notifier == nil || run.SubmittedBy == nil {
		return
	}
	_ = s.notifier.Notify(ctx, *run.SubmittedBy, &actorID, t, title, message,
		map[string]interface{}{"run_id": run.ID})
}

func (s *PayrollServiceImpl) notifyRoles(ctx context.Context, roles []user.Role, actorID string, t notification.NotificationType, title, message, runID string) {
	if s.notifier == nil {
		return
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return
	}
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				_ = s.notifier.Notify(ctx, u.ID, &actorID, t, title, message,
					map[string]interface{}{"run_id": runID})
				break
			}
		}
	}
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	if _, err := s.runRepo.GetByID(ctx, runID); err != nil {
		return nil, err
	}
	return s.payslipRepo.ListByRun(ctx, runID)
}

// MyPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) MyPayslips(ctx context.Context, employeeID string, year int) ([]payroll.Payslip, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	return s.payslipRepo.ListByEmployee(ctx, employeeID, year)
}
