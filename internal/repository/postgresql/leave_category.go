package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type leaveCategoryRepositoryImpl struct {
	db *database.DB
}

func NewLeaveCategoryRepository(db *database.DB) leave.CategoryRepository {
	return &leaveCategoryRepositoryImpl{db: db}
}

// Create implements leave.CategoryRepository.
func (r *leaveCategoryRepositoryImpl) Create(ctx context.Context, category leave.LeaveCategory) (leave.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_categories (id, name, description, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, category.Name, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return leave.LeaveCategory{}, err
	}

	return category, nil
}

// GetByID implements leave.CategoryRepository.
func (r *leaveCategoryRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM leave_categories
		WHERE id = $1
	`

	var category leave.LeaveCategory
	err := q.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Description,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveCategory{}, leave.ErrCategoryNotFound
		}
		return leave.LeaveCategory{}, err
	}

	return category, nil
}

// List implements leave.CategoryRepository.
func (r *leaveCategoryRepositoryImpl) List(ctx context.Context) ([]leave.LeaveCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM leave_categories
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]leave.LeaveCategory, 0)
	for rows.Next() {
		var category leave.LeaveCategory
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Description,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Update implements leave.CategoryRepository.
func (r *leaveCategoryRepositoryImpl) Update(ctx context.Context, category leave.LeaveCategory) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_categories
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrCategoryNotFound
	}

	return nil
}

// Delete implements leave.CategoryRepository.
func (r *leaveCategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrCategoryNotFound
	}

	return nil
}

// CountTypes implements leave.CategoryRepository.
func (r *leaveCategoryRepositoryImpl) CountTypes(ctx context.Context, categoryID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_types WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
