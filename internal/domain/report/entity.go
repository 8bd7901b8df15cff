package report

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type ReportKind string

const (
	KindPayrollSummary ReportKind = "payroll_summary"
	KindLeaveLiability ReportKind = "leave_liability"
)

func IsValidKind(s string) bool {
	switch ReportKind(s) {
	case KindPayrollSummary, KindLeaveLiability:
		return true
	}
	return false
}

// Row is one line of a generated report. Columns vary by kind so values are
// kept as labelled decimals.
type Row struct {
	Label  string                     `json:"label"`
	Values map[string]decimal.Decimal `json:"values"`
}

type Rows []Row

// Value implements driver.Valuer for JSONB storage
func (r Rows) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB retrieval
func (r *Rows) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan report rows: invalid type")
	}

	return json.Unmarshal(bytes, r)
}

// FinanceReport is a generated report retained server-side. Earlier clients
// kept these in browser storage; the backend is now the system of record.
type FinanceReport struct {
	ID          string
	Kind        ReportKind
	Title       string
	PeriodYear  int
	PeriodMonth *int
	Columns     []string
	Rows        Rows
	GeneratedBy string
	GeneratedAt time.Time
}
