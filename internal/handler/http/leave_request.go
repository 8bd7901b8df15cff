package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type LeaveRequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type LeaveRequestHandlerImpl struct {
	requestService leave.RequestService
}

func NewLeaveRequestHandler(requestService leave.RequestService) LeaveRequestHandler {
	return &LeaveRequestHandlerImpl{requestService: requestService}
}

// Submit implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	request, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit leave request error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", request)
}

// Approve implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	approverID := middleware.UserID(r.Context())

	if err := h.requestService.Approve(r.Context(), requestID, approverID); err != nil {
		slog.Error("Approve leave request error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", nil)
}

// Reject implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := h.requestService.Reject(r.Context(), req, middleware.UserID(r.Context())); err != nil {
		slog.Error("Reject leave request error", "error", err, "request_id", req.RequestID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", nil)
}

// Cancel implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	requestID := chi.URLParam(r, "id")
	if err := h.requestService.Cancel(r.Context(), requestID, employeeID); err != nil {
		slog.Error("Cancel leave request error", "error", err, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// List implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := requestFilterFromQuery(r)

	requests, total, err := h.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, pageMeta(filter.Page, filter.Limit, total))
}

// MyRequests implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	filter := requestFilterFromQuery(r)
	filter.EmployeeID = &employeeID

	requests, total, err := h.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, pageMeta(filter.Page, filter.Limit, total))
}

// Get implements LeaveRequestHandler.
func (h *LeaveRequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.requestService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

func requestFilterFromQuery(r *http.Request) leave.RequestFilter {
	q := r.URL.Query()
	filter := leave.RequestFilter{
		Page:  queryInt(q.Get("page"), 1),
		Limit: queryInt(q.Get("limit"), 20),
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("leave_type_id"); v != "" {
		filter.LeaveTypeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	return filter
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func pageMeta(page, limit int, total int64) *response.Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
