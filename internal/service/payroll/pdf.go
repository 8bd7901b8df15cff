package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF implements payroll.PayrollService. It renders one payslip as a
// single-page PDF.
func (s *PayrollServiceImpl) PayslipPDF(ctx context.Context, payslipID string) ([]byte, error) {
	slip, err := s.payslipRepo.GetByID(ctx, payslipID)
	if err != nil {
		return nil, err
	}

	run, err := s.runRepo.GetByID(ctx, slip.RunID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %04d-%02d", run.PeriodYear, run.PeriodMonth))
	pdf.Ln(7)
	if slip.EmployeeName != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", *slip.EmployeeName))
		pdf.Ln(7)
	}
	if slip.Position != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Position: %s", *slip.Position))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	lines := []struct {
		label string
		value string
	}{
		{"Base salary", slip.BaseSalary.StringFixed(2)},
		{"Allowances", slip.Allowances.StringFixed(2)},
		{"Deductions", slip.Deductions.StringFixed(2)},
		{"Tax withheld", slip.TaxWithheld.StringFixed(2)},
		{"Net pay", slip.NetPay.StringFixed(2)},
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Component", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, line := range lines {
		pdf.CellFormat(90, 8, line.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, line.value, "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}

	return buf.Bytes(), nil
}
