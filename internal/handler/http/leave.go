package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type LeaveConfigHandler interface {
	CreateCategory(w http.ResponseWriter, r *http.Request)
	UpdateCategory(w http.ResponseWriter, r *http.Request)
	ListCategories(w http.ResponseWriter, r *http.Request)
	DeleteCategory(w http.ResponseWriter, r *http.Request)

	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	SetEligibility(w http.ResponseWriter, r *http.Request)

	CreatePolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	DeletePolicy(w http.ResponseWriter, r *http.Request)

	UpsertCalendar(w http.ResponseWriter, r *http.Request)
	GetCalendar(w http.ResponseWriter, r *http.Request)

	RunAccrual(w http.ResponseWriter, r *http.Request)
	RunCarryForward(w http.ResponseWriter, r *http.Request)
	ResetEntitlements(w http.ResponseWriter, r *http.Request)

	AssignEntitlement(w http.ResponseWriter, r *http.Request)
	ListEntitlements(w http.ResponseWriter, r *http.Request)
	MyEntitlements(w http.ResponseWriter, r *http.Request)

	CreateAdjustment(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)

	GetSectionAccess(w http.ResponseWriter, r *http.Request)
	SetSectionAccess(w http.ResponseWriter, r *http.Request)
}

type LeaveConfigHandlerImpl struct {
	configService leave.ConfigService
}

func NewLeaveConfigHandler(configService leave.ConfigService) LeaveConfigHandler {
	return &LeaveConfigHandlerImpl{configService: configService}
}

// guard rejects the request when the caller's role is not on the section's
// allow list. Every configuration tab goes through it.
func (h *LeaveConfigHandlerImpl) guard(w http.ResponseWriter, r *http.Request, section leave.ConfigSection) bool {
	role := middleware.Role(r.Context())
	if err := h.configService.CheckSectionAccess(r.Context(), section, role); err != nil {
		slog.Warn("Leave config section denied", "section", section, "role", role)
		response.HandleError(w, err)
		return false
	}
	return true
}

// CreateCategory implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionCategories) {
		return
	}

	var req leave.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	category, err := h.configService.CreateCategory(r.Context(), req)
	if err != nil {
		slog.Error("CreateCategory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave category created successfully", category)
}

// UpdateCategory implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionCategories) {
		return
	}

	var req leave.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.configService.UpdateCategory(r.Context(), req); err != nil {
		slog.Error("UpdateCategory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave category updated successfully", nil)
}

// ListCategories implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionCategories) {
		return
	}

	categories, err := h.configService.ListCategories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, categories)
}

// DeleteCategory implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionCategories) {
		return
	}

	if err := h.configService.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteCategory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave category deleted successfully", nil)
}

// CreateType implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionTypes) {
		return
	}

	var req leave.CreateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := h.configService.CreateType(r.Context(), req)
	if err != nil {
		slog.Error("CreateType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveType)
}

// UpdateType implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionTypes) {
		return
	}

	var req leave.UpdateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.configService.UpdateType(r.Context(), req); err != nil {
		slog.Error("UpdateType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", nil)
}

// GetType implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionTypes) {
		return
	}

	leaveType, err := h.configService.GetType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveType)
}

// ListTypes implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionTypes) {
		return
	}

	types, err := h.configService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// DeleteType implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionTypes) {
		return
	}

	if err := h.configService.DeleteType(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// SetEligibility implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) SetEligibility(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionEligibility) {
		return
	}

	var req leave.SetEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveTypeID = chi.URLParam(r, "id")

	leaveType, err := h.configService.SetEligibility(r.Context(), req)
	if err != nil {
		slog.Error("SetEligibility service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Eligibility rules saved successfully", leaveType)
}

// CreatePolicy implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionPolicies) {
		return
	}

	var req leave.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.configService.CreatePolicy(r.Context(), req)
	if err != nil {
		slog.Error("CreatePolicy service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave policy created successfully", policy)
}

// UpdatePolicy implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionPolicies) {
		return
	}

	var req leave.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.configService.UpdatePolicy(r.Context(), req); err != nil {
		slog.Error("UpdatePolicy service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy updated successfully", nil)
}

// ListPolicies implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionPolicies) {
		return
	}

	policies, err := h.configService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policies)
}

// DeletePolicy implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionPolicies) {
		return
	}

	if err := h.configService.DeletePolicy(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeletePolicy service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy deleted successfully", nil)
}

// UpsertCalendar implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) UpsertCalendar(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionCalendar) {
		return
	}

	var req leave.UpsertCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	calendar, err := h.configService.UpsertCalendar(r.Context(), req)
	if err != nil {
		slog.Error("UpsertCalendar service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calendar saved successfully", calendar)
}

// GetCalendar implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionCalendar) {
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Year must be an integer", nil)
		return
	}

	calendar, err := h.configService.GetCalendar(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, calendar)
}

// RunAccrual implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) RunAccrual(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionAccruals) {
		return
	}

	var req leave.RunAccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.RunAccrual(r.Context(), req)
	if err != nil {
		slog.Error("RunAccrual service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Accrual run finished", "processed", result.Processed, "skipped", result.Skipped)
	response.SuccessWithMessage(w, "Accrual run completed", result)
}

// RunCarryForward implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) RunCarryForward(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionAccruals) {
		return
	}

	var req leave.CarryForwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.RunCarryForward(r.Context(), req)
	if err != nil {
		slog.Error("RunCarryForward service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Carry-forward run finished", "processed", result.Processed, "skipped", result.Skipped)
	response.SuccessWithMessage(w, "Carry-forward run completed", result)
}

// ResetEntitlements implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) ResetEntitlements(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionReset) {
		return
	}

	var req leave.ResetEntitlementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.ResetEntitlements(r.Context(), req)
	if err != nil {
		slog.Error("ResetEntitlements service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Entitlement reset finished", "year", req.Year, "processed", result.Processed)
	response.SuccessWithMessage(w, "Entitlements reset successfully", result)
}

// AssignEntitlement implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) AssignEntitlement(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionEntitlements) {
		return
	}

	var req leave.AssignEntitlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entitlement, err := h.configService.AssignEntitlement(r.Context(), req)
	if err != nil {
		slog.Error("AssignEntitlement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entitlement assigned successfully", entitlement)
}

// ListEntitlements implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) ListEntitlements(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionEntitlements) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	year := queryYear(r)

	entitlements, err := h.configService.ListEntitlements(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entitlements)
}

// MyEntitlements returns the caller's own balances. It is not section
// guarded, every employee can see their own numbers.
func (h *LeaveConfigHandlerImpl) MyEntitlements(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	entitlements, err := h.configService.ListEntitlements(r.Context(), employeeID, queryYear(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entitlements)
}

// CreateAdjustment implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionAdjustments) {
		return
	}

	var req leave.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.HRUserID = middleware.UserID(r.Context())

	result, err := h.configService.CreateAdjustment(r.Context(), req)
	if err != nil {
		slog.Error("CreateAdjustment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment applied successfully", result)
}

// ListAdjustments implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionAdjustments) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	var leaveTypeID *string
	if v := r.URL.Query().Get("leave_type_id"); v != "" {
		leaveTypeID = &v
	}

	adjustments, err := h.configService.ListAdjustments(r.Context(), employeeID, leaveTypeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, adjustments)
}

// GetSectionAccess implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) GetSectionAccess(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionAccessControl) {
		return
	}

	access, err := h.configService.GetSectionAccess(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, access)
}

// SetSectionAccess implements LeaveConfigHandler.
func (h *LeaveConfigHandlerImpl) SetSectionAccess(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, leave.SectionAccessControl) {
		return
	}

	var req leave.SetSectionAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.configService.SetSectionAccess(r.Context(), req); err != nil {
		slog.Error("SetSectionAccess service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Section access saved successfully", nil)
}

func queryYear(r *http.Request) int {
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			return year
		}
	}
	return time.Now().Year()
}
