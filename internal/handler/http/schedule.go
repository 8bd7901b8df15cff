package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/schedule"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	DeactivateTemplate(w http.ResponseWriter, r *http.Request)
	AssignShift(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	MySchedule(w http.ResponseWriter, r *http.Request)
	RemoveAssignment(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// CreateTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	template, err := h.scheduleService.CreateTemplate(r.Context(), req)
	if err != nil {
		slog.Error("CreateTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift template created successfully", template)
}

// ListTemplates implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.scheduleService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, templates)
}

// DeactivateTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeactivateTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeactivateTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template deactivated", nil)
}

// AssignShift implements ScheduleHandler.
func (h *ScheduleHandlerImpl) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	assignment, err := h.scheduleService.AssignShift(r.Context(), req)
	if err != nil {
		slog.Error("AssignShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned successfully", assignment)
}

// ListAssignments implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.scheduleService.ListAssignments(r.Context(), assignmentFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, assignments)
}

// MySchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) MySchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	filter := assignmentFilterFromQuery(r)
	filter.EmployeeID = &employeeID

	assignments, err := h.scheduleService.ListAssignments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, assignments)
}

// RemoveAssignment implements ScheduleHandler.
func (h *ScheduleHandlerImpl) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.RemoveAssignment(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("RemoveAssignment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assignment removed", nil)
}

func assignmentFilterFromQuery(r *http.Request) schedule.AssignmentFilter {
	q := r.URL.Query()
	var filter schedule.AssignmentFilter
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("from"); v != "" {
		filter.From = &v
	}
	if v := q.Get("to"); v != "" {
		filter.To = &v
	}
	return filter
}
