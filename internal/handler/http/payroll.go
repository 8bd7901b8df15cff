package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workforcehq/hrms-backend-go/internal/domain/payroll"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	SubmitRun(w http.ResponseWriter, r *http.Request)
	ApproveRun(w http.ResponseWriter, r *http.Request)
	RejectRun(w http.ResponseWriter, r *http.Request)
	LockRun(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	MyPayslips(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// ListRuns implements PayrollHandler.
func (h *PayrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := payroll.RunFilter{
		Page:  queryInt(q.Get("page"), 1),
		Limit: queryInt(q.Get("limit"), 20),
	}
	if v := q.Get("year"); v != "" {
		year := queryInt(v, 0)
		if year > 0 {
			filter.Year = &year
		}
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}

	runs, total, err := h.payrollService.ListRuns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, runs, pageMeta(filter.Page, filter.Limit, total))
}

// GetRun implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.payrollService.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// SubmitRun implements PayrollHandler.
func (h *PayrollHandlerImpl) SubmitRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if err := h.payrollService.SubmitForApproval(r.Context(), runID, middleware.UserID(r.Context())); err != nil {
		slog.Error("SubmitRun service error", "error", err, "run_id", runID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run submitted for approval", nil)
}

// ApproveRun implements PayrollHandler.
func (h *PayrollHandlerImpl) ApproveRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if err := h.payrollService.ApproveRun(r.Context(), runID, middleware.UserID(r.Context())); err != nil {
		slog.Error("ApproveRun service error", "error", err, "run_id", runID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run approved", nil)
}

// RejectRun implements PayrollHandler.
func (h *PayrollHandlerImpl) RejectRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.RejectRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RunID = chi.URLParam(r, "id")

	if err := h.payrollService.RejectRun(r.Context(), req, middleware.UserID(r.Context())); err != nil {
		slog.Error("RejectRun service error", "error", err, "run_id", req.RunID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run rejected", nil)
}

// LockRun implements PayrollHandler.
func (h *PayrollHandlerImpl) LockRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if err := h.payrollService.LockRun(r.Context(), runID, middleware.UserID(r.Context())); err != nil {
		slog.Error("LockRun service error", "error", err, "run_id", runID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run locked", nil)
}

// ListPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	payslips, err := h.payrollService.ListPayslips(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// MyPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) MyPayslips(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	payslips, err := h.payrollService.MyPayslips(r.Context(), employeeID, queryYear(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// DownloadPayslip streams a payslip as PDF.
func (h *PayrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "id")

	pdf, err := h.payrollService.PayslipPDF(r.Context(), payslipID)
	if err != nil {
		slog.Error("DownloadPayslip service error", "error", err, "payslip_id", payslipID)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, payslipID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
