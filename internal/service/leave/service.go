package leave

import (
	"context"
	"fmt"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/domain/notification"
	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
	"github.com/workforcehq/hrms-backend-go/internal/repository/postgresql"
)

// ConfigService coordinates the leave configuration tabs: categories, types,
// eligibility, policies, calendar, batch runs, entitlements, adjustments,
// reset and section access. Every mutation validates before touching any
// repository so a rejected request leaves no trace.
type ConfigService struct {
	db *database.DB
	leave.CategoryRepository
	leave.TypeRepository
	leave.PolicyRepository
	leave.CalendarRepository
	leave.EntitlementRepository
	leave.AdjustmentRepository
	leave.AccessRepository
	employee.EmployeeRepository
	notifier notification.NotificationService
}

func NewConfigService(
	db *database.DB,
	categoryRepo leave.CategoryRepository,
	typeRepo leave.TypeRepository,
	policyRepo leave.PolicyRepository,
	calendarRepo leave.CalendarRepository,
	entitlementRepo leave.EntitlementRepository,
	adjustmentRepo leave.AdjustmentRepository,
	accessRepo leave.AccessRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.NotificationService,
) *ConfigService {
	return &ConfigService{
		db:                    db,
		CategoryRepository:    categoryRepo,
		TypeRepository:        typeRepo,
		PolicyRepository:      policyRepo,
		CalendarRepository:    calendarRepo,
		EntitlementRepository: entitlementRepo,
		AdjustmentRepository:  adjustmentRepo,
		AccessRepository:      accessRepo,
		EmployeeRepository:    employeeRepo,
		notifier:              notifier,
	}
}

// inTx runs fn inside a database transaction. Without a configured pool fn
// runs directly against the injected repositories.
func inTx(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	if db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, db, fn)
}

// CreateCategory implements leave.ConfigService.
func (s *ConfigService) CreateCategory(ctx context.Context, req leave.CreateCategoryRequest) (leave.LeaveCategory, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveCategory{}, err
	}

	category := leave.LeaveCategory{
		Name:        req.Name,
		Description: req.Description,
	}

	created, err := s.CategoryRepository.Create(ctx, category)
	if err != nil {
		return leave.LeaveCategory{}, fmt.Errorf("failed to create leave category: %w", err)
	}

	return created, nil
}

// UpdateCategory implements leave.ConfigService.
func (s *ConfigService) UpdateCategory(ctx context.Context, req leave.UpdateCategoryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	category, err := s.CategoryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := s.CategoryRepository.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to update leave category: %w", err)
	}

	return nil
}

// ListCategories implements leave.ConfigService.
func (s *ConfigService) ListCategories(ctx context.Context) ([]leave.LeaveCategory, error) {
	return s.CategoryRepository.List(ctx)
}

// DeleteCategory implements leave.ConfigService. A category still referenced
// by leave types cannot be deleted.
func (s *ConfigService) DeleteCategory(ctx context.Context, id string) error {
	count, err := s.CategoryRepository.CountTypes(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count types in category: %w", err)
	}
	if count > 0 {
		return leave.ErrCategoryInUse
	}

	return s.CategoryRepository.Delete(ctx, id)
}

// CreateType implements leave.ConfigService.
func (s *ConfigService) CreateType(ctx context.Context, req leave.CreateTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	if _, err := s.CategoryRepository.GetByID(ctx, req.CategoryID); err != nil {
		return leave.LeaveType{}, err
	}

	if _, err := s.TypeRepository.GetByCode(ctx, req.Code); err == nil {
		return leave.LeaveType{}, leave.ErrTypeCodeExists
	}

	leaveType := leave.LeaveType{
		Code:               req.Code,
		Name:               req.Name,
		CategoryID:         req.CategoryID,
		Paid:               req.Paid,
		Deductible:         req.Deductible,
		RequiresAttachment: req.RequiresAttachment,
		AttachmentType:     req.AttachmentType,
	}

	created, err := s.TypeRepository.Create(ctx, leaveType)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return created, nil
}

// UpdateType implements leave.ConfigService.
func (s *ConfigService) UpdateType(ctx context.Context, req leave.UpdateTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	leaveType, err := s.TypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		leaveType.Name = *req.Name
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepository.GetByID(ctx, *req.CategoryID); err != nil {
			return err
		}
		leaveType.CategoryID = *req.CategoryID
	}
	if req.Paid != nil {
		leaveType.Paid = *req.Paid
	}
	if req.Deductible != nil {
		leaveType.Deductible = *req.Deductible
	}
	if req.RequiresAttachment != nil {
		leaveType.RequiresAttachment = *req.RequiresAttachment
	}
	if req.AttachmentType != nil {
		leaveType.AttachmentType = req.AttachmentType
	}

	if err := s.TypeRepository.Update(ctx, leaveType); err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}

	return nil
}

// GetType implements leave.ConfigService.
func (s *ConfigService) GetType(ctx context.Context, id string) (leave.LeaveType, error) {
	return s.TypeRepository.GetByID(ctx, id)
}

// ListTypes implements leave.ConfigService.
func (s *ConfigService) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.TypeRepository.List(ctx)
}

// DeleteType implements leave.ConfigService.
func (s *ConfigService) DeleteType(ctx context.Context, id string) error {
	if _, err := s.TypeRepository.GetByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.PolicyRepository.GetByLeaveType(ctx, id); err == nil {
		return leave.ErrTypeInUse
	}

	return s.TypeRepository.Delete(ctx, id)
}

// SetEligibility implements leave.ConfigService. The write is followed by a
// re-read of the same type, and the re-read is what callers get back, so a
// silently dropped write surfaces immediately.
func (s *ConfigService) SetEligibility(ctx context.Context, req leave.SetEligibilityRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	if _, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveType{}, err
	}

	if err := s.TypeRepository.SetEligibility(ctx, req.LeaveTypeID, req.Eligibility); err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to set eligibility: %w", err)
	}

	refreshed, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to re-read leave type after eligibility write: %w", err)
	}

	return refreshed, nil
}

// CreatePolicy implements leave.ConfigService.
func (s *ConfigService) CreatePolicy(ctx context.Context, req leave.CreatePolicyRequest) (leave.LeavePolicy, error) {
	if err := req.Validate(); err != nil {
		return leave.LeavePolicy{}, err
	}

	if _, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeavePolicy{}, err
	}

	if _, err := s.PolicyRepository.GetByLeaveType(ctx, req.LeaveTypeID); err == nil {
		return leave.LeavePolicy{}, leave.ErrPolicyExists
	}

	policy := leave.LeavePolicy{
		LeaveTypeID:         req.LeaveTypeID,
		AccrualMethod:       leave.AccrualMethod(req.AccrualMethod),
		MonthlyRate:         req.MonthlyRate,
		YearlyRate:          req.YearlyRate,
		CarryForwardAllowed: req.CarryForwardAllowed,
		MaxCarryForward:     req.MaxCarryForward,
		ExpiryAfterMonths:   req.ExpiryAfterMonths,
		RoundingRule:        leave.RoundingRule(req.RoundingRule),
		MinNoticeDays:       req.MinNoticeDays,
		MaxConsecutiveDays:  req.MaxConsecutiveDays,
	}

	created, err := s.PolicyRepository.Create(ctx, policy)
	if err != nil {
		return leave.LeavePolicy{}, fmt.Errorf("failed to create leave policy: %w", err)
	}

	return created, nil
}

// UpdatePolicy implements leave.ConfigService.
func (s *ConfigService) UpdatePolicy(ctx context.Context, req leave.UpdatePolicyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.PolicyRepository.GetByID(ctx, req.ID); err != nil {
		return err
	}

	if err := s.PolicyRepository.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update leave policy: %w", err)
	}

	return nil
}

// ListPolicies implements leave.ConfigService.
func (s *ConfigService) ListPolicies(ctx context.Context) ([]leave.LeavePolicy, error) {
	return s.PolicyRepository.List(ctx)
}

// DeletePolicy implements leave.ConfigService.
func (s *ConfigService) DeletePolicy(ctx context.Context, id string) error {
	if _, err := s.PolicyRepository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.PolicyRepository.Delete(ctx, id)
}

// UpsertCalendar implements leave.ConfigService.
func (s *ConfigService) UpsertCalendar(ctx context.Context, req leave.UpsertCalendarRequest) (leave.Calendar, error) {
	if err := req.Validate(); err != nil {
		return leave.Calendar{}, err
	}

	saved, err := s.CalendarRepository.Upsert(ctx, req.ToCalendar())
	if err != nil {
		return leave.Calendar{}, fmt.Errorf("failed to save calendar: %w", err)
	}

	return saved, nil
}

// GetCalendar implements leave.ConfigService.
func (s *ConfigService) GetCalendar(ctx context.Context, year int) (leave.Calendar, error) {
	return s.CalendarRepository.GetByYear(ctx, year)
}

// GetSectionAccess implements leave.ConfigService.
func (s *ConfigService) GetSectionAccess(ctx context.Context) ([]leave.SectionAccess, error) {
	return s.AccessRepository.List(ctx)
}

// SetSectionAccess implements leave.ConfigService.
func (s *ConfigService) SetSectionAccess(ctx context.Context, req leave.SetSectionAccessRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	for _, role := range req.AllowedRoles {
		if !user.IsValidRole(role) {
			return leave.ErrSectionForbidden
		}
	}

	access := leave.SectionAccess{
		Section:      leave.ConfigSection(req.Section),
		AllowedRoles: req.AllowedRoles,
	}

	return s.AccessRepository.Set(ctx, access)
}

// CheckSectionAccess implements leave.ConfigService. Sections without a
// stored allow-list fall back to HR admin and system admin.
func (s *ConfigService) CheckSectionAccess(ctx context.Context, section leave.ConfigSection, role string) error {
	access, err := s.AccessRepository.Get(ctx, section)
	if err != nil {
		if role == string(user.RoleHRAdmin) || role == string(user.RoleSystemAdmin) {
			return nil
		}
		return leave.ErrSectionForbidden
	}

	for _, allowed := range access.AllowedRoles {
		if allowed == role {
			return nil
		}
	}

	return leave.ErrSectionForbidden
}
