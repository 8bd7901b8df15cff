package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/domain/performance"
	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
)

// PerformanceServiceImpl serves appraisal lookups and runs the dispute
// lifecycle. Disputes move open -> under_review -> resolved or rejected,
// never backwards.
type PerformanceServiceImpl struct {
	appraisalRepo performance.AppraisalRepository
	disputeRepo   performance.DisputeRepository
	employeeRepo  employee.EmployeeRepository
	userRepo      user.UserRepository
	notifier      notification.NotificationService
}

func NewPerformanceService(
	appraisalRepo performance.AppraisalRepository,
	disputeRepo performance.DisputeRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	notifier notification.NotificationService,
) *PerformanceServiceImpl {
	return &PerformanceServiceImpl{
		appraisalRepo: appraisalRepo,
		disputeRepo:   disputeRepo,
		employeeRepo:  employeeRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// GetAppraisal implements performance.PerformanceService.
func (s *PerformanceServiceImpl) GetAppraisal(ctx context.Context, id string) (performance.Appraisal, error) {
	return s.appraisalRepo.GetByID(ctx, id)
}

// ListAppraisals implements performance.PerformanceService.
func (s *PerformanceServiceImpl) ListAppraisals(ctx context.Context, employeeID string) ([]performance.Appraisal, error) {
	return s.appraisalRepo.ListByEmployee(ctx, employeeID)
}

// FileDispute implements performance.PerformanceService. Only the appraised
// employee may dispute their own appraisal.
func (s *PerformanceServiceImpl) FileDispute(ctx context.Context, req performance.FileDisputeRequest) (performance.Dispute, error) {
	if err := req.Validate(); err != nil {
		return performance.Dispute{}, err
	}

	appraisal, err := s.appraisalRepo.GetByID(ctx, req.AppraisalID)
	if err != nil {
		return performance.Dispute{}, err
	}
	if appraisal.EmployeeID != req.EmployeeID {
		return performance.Dispute{}, performance.ErrNotDisputeOwner
	}

	dispute := performance.Dispute{
		AppraisalID: req.AppraisalID,
		EmployeeID:  req.EmployeeID,
		Grounds:     req.Grounds,
		Status:      performance.DisputeOpen,
	}

	created, err := s.disputeRepo.Create(ctx, dispute)
	if err != nil {
		return performance.Dispute{}, fmt.Errorf("failed to file dispute: %w", err)
	}

	s.notifyHRManagers(ctx, created)

	return created, nil
}

// TakeDispute implements performance.PerformanceService. An HR manager
// takes an open dispute under review and becomes its assignee.
func (s *PerformanceServiceImpl) TakeDispute(ctx context.Context, disputeID, assigneeID string) error {
	dispute, err := s.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return err
	}

	if !performance.CanTransition(dispute.Status, performance.DisputeUnderReview) {
		return performance.ErrInvalidDisputeTransition
	}

	dispute.Status = performance.DisputeUnderReview
	dispute.AssigneeID = &assigneeID

	if err := s.disputeRepo.UpdateStatus(ctx, dispute); err != nil {
		return fmt.Errorf("failed to take dispute: %w", err)
	}

	return nil
}

// ResolveDispute implements performance.PerformanceService. The assigned
// reviewer closes the dispute as resolved or rejected with a written
// resolution.
func (s *PerformanceServiceImpl) ResolveDispute(ctx context.Context, req performance.ResolveDisputeRequest, assigneeID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dispute, err := s.disputeRepo.GetByID(ctx, req.DisputeID)
	if err != nil {
		return err
	}

	outcome := performance.DisputeStatus(req.Outcome)
	if !performance.CanTransition(dispute.Status, outcome) {
		if dispute.Status == performance.DisputeResolved || dispute.Status == performance.DisputeRejected {
			return performance.ErrDisputeAlreadyResolved
		}
		return performance.ErrInvalidDisputeTransition
	}

	now := time.Now()
	dispute.Status = outcome
	dispute.AssigneeID = &assigneeID
	dispute.Resolution = &req.Resolution
	dispute.ResolvedAt = &now

	if err := s.disputeRepo.UpdateStatus(ctx, dispute); err != nil {
		return fmt.Errorf("failed to resolve dispute: %w", err)
	}

	s.notifyEmployee(ctx, dispute, assigneeID)

	return nil
}

// ListDisputes implements performance.PerformanceService.
func (s *PerformanceServiceImpl) ListDisputes(ctx context.Context, filter performance.DisputeFilter) ([]performance.Dispute, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.disputeRepo.List(ctx, filter)
}

// GetDispute implements performance.PerformanceService.
func (s *PerformanceServiceImpl) GetDispute(ctx context.Context, id string) (performance.Dispute, error) {
	return s.disputeRepo.GetByID(ctx, id)
}

func (s *PerformanceServiceImpl) notifyHRManagers(ctx context.Context, dispute performance.Dispute) {
	if s.notifier == nil {
		return
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return
	}
	for _, u := range users {
		if u.IsActive && u.Role == user.RoleHRManager {
			_ = s.notifier.Notify(ctx, u.ID, nil, notification.TypeDisputeFiled,
				"Appraisal dispute filed",
				"An employee disputed their appraisal outcome",
				map[string]interface{}{"dispute_id": dispute.ID})
		}
	}
}

func (s *PerformanceServiceImpl) notifyEmployee(ctx context.Context, dispute performance.Dispute, actorID string) {
	if s.notifier == nil {
		return
	}
	emp, err := s.employeeRepo.GetByID(ctx, dispute.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	_ = s.notifier.Notify(ctx, *emp.UserID, &actorID, notification.TypeDisputeResolved,
		"Appraisal dispute decided",
		fmt.Sprintf("Your dispute was %s", dispute.Status),
		map[string]interface{}{"dispute_id": dispute.ID})
}
