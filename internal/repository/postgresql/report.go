package postgresql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/report"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

// Store implements report.Repository.
func (r *reportRepositoryImpl) Store(ctx context.Context, rep report.FinanceReport) (report.FinanceReport, error) {
	q := GetQuerier(ctx, r.db)

	rowsJSON, err := json.Marshal(rep.Rows)
	if err != nil {
		return report.FinanceReport{}, err
	}

	query := `
		INSERT INTO finance_reports (
			id, kind, title, period_year, period_month,
			columns, rows, generated_by, generated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, generated_at
	`

	err = q.QueryRow(ctx, query,
		rep.Kind, rep.Title, rep.PeriodYear, rep.PeriodMonth,
		rep.Columns, rowsJSON, rep.GeneratedBy,
	).Scan(&rep.ID, &rep.GeneratedAt)
	if err != nil {
		return report.FinanceReport{}, err
	}

	return rep, nil
}

// GetByID implements report.Repository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id string) (report.FinanceReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kind, title, period_year, period_month,
			   columns, rows, generated_by, generated_at
		FROM finance_reports
		WHERE id = $1
	`

	var rep report.FinanceReport
	var rowsJSON []byte

	err := q.QueryRow(ctx, query, id).Scan(
		&rep.ID, &rep.Kind, &rep.Title, &rep.PeriodYear, &rep.PeriodMonth,
		&rep.Columns, &rowsJSON, &rep.GeneratedBy, &rep.GeneratedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.FinanceReport{}, report.ErrReportNotFound
		}
		return report.FinanceReport{}, err
	}

	if rowsJSON != nil {
		if err := json.Unmarshal(rowsJSON, &rep.Rows); err != nil {
			return report.FinanceReport{}, err
		}
	}

	return rep, nil
}

// List implements report.Repository. Row payloads are skipped; listings only
// need the metadata.
func (r *reportRepositoryImpl) List(ctx context.Context) ([]report.FinanceReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kind, title, period_year, period_month,
			   columns, generated_by, generated_at
		FROM finance_reports
		ORDER BY generated_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]report.FinanceReport, 0)
	for rows.Next() {
		var rep report.FinanceReport
		if err := rows.Scan(
			&rep.ID, &rep.Kind, &rep.Title, &rep.PeriodYear, &rep.PeriodMonth,
			&rep.Columns, &rep.GeneratedBy, &rep.GeneratedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

// Delete implements report.Repository.
func (r *reportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM finance_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}

	return nil
}
