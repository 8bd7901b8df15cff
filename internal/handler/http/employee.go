package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Profile(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Profile returns the employee record linked to the authenticated user.
func (h *EmployeeHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Authentication required")
		return
	}

	emp, err := h.employeeService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := employee.ListFilter{
		ActiveOnly: q.Get("active_only") == "true",
		Page:       queryInt(q.Get("page"), 1),
		Limit:      queryInt(q.Get("limit"), 20),
	}
	if v := q.Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	if v := q.Get("position"); v != "" {
		filter.Position = &v
	}
	if v := q.Get("contract_type"); v != "" {
		filter.ContractType = &v
	}

	employees, total, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, employees, pageMeta(filter.Page, filter.Limit, total))
}

// ListDepartments implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.employeeService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}
