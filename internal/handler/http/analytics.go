package http

import (
	"net/http"

	"github.com/workforcehq/hrms-backend-go/internal/domain/analytics"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	Headcount(w http.ResponseWriter, r *http.Request)
	LeaveUtilization(w http.ResponseWriter, r *http.Request)
	PayrollCost(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &AnalyticsHandlerImpl{analyticsService: analyticsService}
}

// Headcount implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) Headcount(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.HeadcountByDepartment(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// LeaveUtilization implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) LeaveUtilization(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.LeaveUtilization(r.Context(), queryYear(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// PayrollCost implements AnalyticsHandler.
func (h *AnalyticsHandlerImpl) PayrollCost(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.PayrollCost(r.Context(), queryYear(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
