package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/performance"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	GetAppraisal(w http.ResponseWriter, r *http.Request)
	MyAppraisals(w http.ResponseWriter, r *http.Request)
	ListAppraisals(w http.ResponseWriter, r *http.Request)
	FileDispute(w http.ResponseWriter, r *http.Request)
	TakeDispute(w http.ResponseWriter, r *http.Request)
	ResolveDispute(w http.ResponseWriter, r *http.Request)
	ListDisputes(w http.ResponseWriter, r *http.Request)
	GetDispute(w http.ResponseWriter, r *http.Request)
}

type PerformanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &PerformanceHandlerImpl{performanceService: performanceService}
}

// GetAppraisal implements PerformanceHandler.
func (h *PerformanceHandlerImpl) GetAppraisal(w http.ResponseWriter, r *http.Request) {
	appraisal, err := h.performanceService.GetAppraisal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, appraisal)
}

// MyAppraisals implements PerformanceHandler.
func (h *PerformanceHandlerImpl) MyAppraisals(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	appraisals, err := h.performanceService.ListAppraisals(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, appraisals)
}

// ListAppraisals implements PerformanceHandler.
func (h *PerformanceHandlerImpl) ListAppraisals(w http.ResponseWriter, r *http.Request) {
	appraisals, err := h.performanceService.ListAppraisals(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, appraisals)
}

// FileDispute implements PerformanceHandler.
func (h *PerformanceHandlerImpl) FileDispute(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	var req performance.FileDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	dispute, err := h.performanceService.FileDispute(r.Context(), req)
	if err != nil {
		slog.Error("FileDispute service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Dispute filed successfully", dispute)
}

// TakeDispute implements PerformanceHandler.
func (h *PerformanceHandlerImpl) TakeDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "id")
	if err := h.performanceService.TakeDispute(r.Context(), disputeID, middleware.UserID(r.Context())); err != nil {
		slog.Error("TakeDispute service error", "error", err, "dispute_id", disputeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dispute taken for review", nil)
}

// ResolveDispute implements PerformanceHandler.
func (h *PerformanceHandlerImpl) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req performance.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DisputeID = chi.URLParam(r, "id")

	if err := h.performanceService.ResolveDispute(r.Context(), req, middleware.UserID(r.Context())); err != nil {
		slog.Error("ResolveDispute service error", "error", err, "dispute_id", req.DisputeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dispute resolved", nil)
}

// ListDisputes implements PerformanceHandler.
func (h *PerformanceHandlerImpl) ListDisputes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := performance.DisputeFilter{
		Page:  queryInt(q.Get("page"), 1),
		Limit: queryInt(q.Get("limit"), 20),
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}

	disputes, total, err := h.performanceService.ListDisputes(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, disputes, pageMeta(filter.Page, filter.Limit, total))
}

// GetDispute implements PerformanceHandler.
func (h *PerformanceHandlerImpl) GetDispute(w http.ResponseWriter, r *http.Request) {
	dispute, err := h.performanceService.GetDispute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dispute)
}
