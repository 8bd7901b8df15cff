package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/validator"
)

// RequestService runs the employee-facing leave request lifecycle against
// the configured types, policies, calendar and entitlements.
type RequestService struct {
	db *database.DB
	leave.RequestRepository
	leave.TypeRepository
	leave.PolicyRepository
	leave.CalendarRepository
	leave.EntitlementRepository
	employee.EmployeeRepository
	notifier notification.NotificationService
}

func NewRequestService(
	db *database.DB,
	requestRepo leave.RequestRepository,
	typeRepo leave.TypeRepository,
	policyRepo leave.PolicyRepository,
	calendarRepo leave.CalendarRepository,
	entitlementRepo leave.EntitlementRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.NotificationService,
) *RequestService {
	return &RequestService{
		db:                    db,
		RequestRepository:     requestRepo,
		TypeRepository:        typeRepo,
		PolicyRepository:      policyRepo,
		CalendarRepository:    calendarRepo,
		EntitlementRepository: entitlementRepo,
		EmployeeRepository:    employeeRepo,
		notifier:              notifier,
	}
}

// Submit implements leave.RequestService. Every configured rule is checked
// before anything is written: eligibility, attachment requirement, notice
// period, consecutive-day limit, calendar blocks and the remaining balance.
// The requested days go on pending hold until a decision is made.
func (s *RequestService) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if leaveType.Eligibility != nil &&
		!leaveType.Eligibility.Allows(emp.Position, string(emp.ContractType), string(emp.EmploymentType), emp.TenureMonths(start)) {
		return leave.LeaveRequest{}, leave.ErrNotEligible
	}

	if leaveType.RequiresAttachment && (req.AttachmentURL == nil || *req.AttachmentURL == "") {
		return leave.LeaveRequest{}, leave.ErrAttachmentRequired
	}

	policy, err := s.PolicyRepository.GetByLeaveType(ctx, req.LeaveTypeID)
	if err == nil {
		if policy.MinNoticeDays > 0 {
			notice := int(start.Sub(time.Now().Truncate(24*time.Hour)).Hours() / 24)
			if notice < policy.MinNoticeDays {
				return leave.LeaveRequest{}, leave.ErrNoticeTooShort
			}
		}
		if policy.MaxConsecutiveDays != nil {
			span := int(end.Sub(start).Hours()/24) + 1
			if span > *policy.MaxConsecutiveDays {
				return leave.LeaveRequest{}, leave.ErrTooManyConsecutive
			}
		}
	}

	days, err := s.countedDays(ctx, start, end)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var entitlement *leave.Entitlement
	if leaveType.Deductible {
		ent, err := s.EntitlementRepository.GetByEmployeeAndType(ctx, req.EmployeeID, req.LeaveTypeID, start.Year())
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		if ent.Remaining().LessThan(days) {
			return leave.LeaveRequest{}, leave.ErrInsufficientBalance
		}
		entitlement = &ent
	}

	request := leave.LeaveRequest{
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   req.LeaveTypeID,
		StartDate:     start,
		EndDate:       end,
		Days:          days,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        leave.RequestStatusPending,
	}

	// The request row and its pending hold land together or not at all.
	var created leave.LeaveRequest
	err = inTx(ctx, s.db, func(ctx context.Context) error {
		created, err = s.RequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		if entitlement != nil {
			return s.EntitlementRepository.AddPending(ctx, entitlement.ID, days)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// countedDays sums the days in the range that count against the balance.
// Weekends and configured holidays are free, and a blocked period anywhere
// in the range rejects the request outright.
func (s *RequestService) countedDays(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	calendar, calErr := s.CalendarRepository.GetByYear(ctx, start.Year())

	days := decimal.Zero
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if calErr == nil {
			if bp := calendar.BlockedOn(d); bp != nil {
				return decimal.Zero, leave.ErrPeriodBlocked
			}
			if calendar.IsHoliday(d) {
				continue
			}
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = days.Add(decimal.NewFromInt(1))
	}

	if days.IsZero() {
		return decimal.Zero, leave.ErrNoWorkingDays
	}

	return days, nil
}

// Approve implements leave.RequestService. The pending hold converts into
// taken days.
func (s *RequestService) Approve(ctx context.Context, requestID, approverID string) error {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ErrRequestProcessed
	}

	err = inTx(ctx, s.db, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, leave.RequestStatusApproved, &approverID, nil); err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		return s.settleHold(ctx, request, true)
	})
	if err != nil {
		return err
	}

	s.notifyDecision(ctx, request, approverID, notification.TypeLeaveApproved, "Leave request approved", "")
	return nil
}

// Reject implements leave.RequestService. The pending hold is released.
func (s *RequestService) Reject(ctx context.Context, req leave.RejectLeaveRequestRequest, approverID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	request, err := s.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ErrRequestProcessed
	}

	err = inTx(ctx, s.db, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, req.RequestID, leave.RequestStatusRejected, &approverID, &req.Reason); err != nil {
			return fmt.Errorf("failed to reject leave request: %w", err)
		}
		return s.settleHold(ctx, request, false)
	})
	if err != nil {
		return err
	}

	s.notifyDecision(ctx, request, approverID, notification.TypeLeaveRejected, "Leave request rejected", req.Reason)
	return nil
}

// Cancel implements leave.RequestService. Only the owner may cancel, and
// only while the request is still pending.
func (s *RequestService) Cancel(ctx context.Context, requestID, employeeID string) error {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrRequestNotFound
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ErrRequestProcessed
	}

	return inTx(ctx, s.db, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, leave.RequestStatusCancelled, nil, nil); err != nil {
			return fmt.Errorf("failed to cancel leave request: %w", err)
		}
		return s.settleHold(ctx, request, false)
	})
}

// settleHold resolves the pending hold after a decision. Approved requests
// move the hold into taken days, everything else releases it. A missing type
// or entitlement row means there is no hold to settle; any other repository
// error propagates so the surrounding transaction rolls back.
func (s *RequestService) settleHold(ctx context.Context, request leave.LeaveRequest, approved bool) error {
	leaveType, err := s.TypeRepository.GetByID(ctx, request.LeaveTypeID)
	if err != nil {
		if errors.Is(err, leave.ErrTypeNotFound) {
			return nil
		}
		return err
	}
	if !leaveType.Deductible {
		return nil
	}

	ent, err := s.EntitlementRepository.GetByEmployeeAndType(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
	if err != nil {
		if errors.Is(err, leave.ErrEntitlementNotFound) {
			return nil
		}
		return err
	}

	if approved {
		return s.EntitlementRepository.MovePendingToTaken(ctx, ent.ID, request.Days)
	}
	return s.EntitlementRepository.ReleasePending(ctx, ent.ID, request.Days)
}

func (s *RequestService) notifyDecision(ctx context.Context, request leave.LeaveRequest, approverID string, t notification.NotificationType, title, reason string) {
	if s.notifier == nil {
		return
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	message := fmt.Sprintf("Your leave request for %s to %s has been decided",
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))
	if reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}
	_ = s.notifier.Notify(ctx, *emp.UserID, &approverID, t, title, message,
		map[string]interface{}{"request_id": request.ID})
}

// List implements leave.RequestService.
func (s *RequestService) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.RequestRepository.List(ctx, filter)
}

// Get implements leave.RequestService.
func (s *RequestService) Get(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return s.RequestRepository.GetByID(ctx, requestID)
}
