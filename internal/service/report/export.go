package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ExportCSV implements report.ReportService. The first column is the row
// label, followed by the report's value columns in order.
func (s *ReportServiceImpl) ExportCSV(ctx context.Context, id string) ([]byte, error) {
	rep, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"label"}, rep.Columns...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rep.Rows {
		record := []string{row.Label}
		for _, col := range rep.Columns {
			record = append(record, row.Values[col].StringFixed(2))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportPDF implements report.ReportService.
func (s *ReportServiceImpl) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	rep, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, rep.Title)
	pdf.Ln(12)

	labelWidth := 70.0
	colWidth := 120.0 / float64(len(rep.Columns))

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, 8, "", "1", 0, "L", false, 0, "")
	for _, col := range rep.Columns {
		pdf.CellFormat(colWidth, 8, col, "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rep.Rows {
		pdf.CellFormat(labelWidth, 8, row.Label, "1", 0, "L", false, 0, "")
		for _, col := range rep.Columns {
			pdf.CellFormat(colWidth, 8, row.Values[col].StringFixed(2), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}

	return buf.Bytes(), nil
}
