package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type leaveAccessRepositoryImpl struct {
	db *database.DB
}

func NewLeaveAccessRepository(db *database.DB) leave.AccessRepository {
	return &leaveAccessRepositoryImpl{db: db}
}

// Get implements leave.AccessRepository.
func (r *leaveAccessRepositoryImpl) Get(ctx context.Context, section leave.ConfigSection) (leave.SectionAccess, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT section, allowed_roles, updated_at
		FROM leave_section_access
		WHERE section = $1
	`

	var access leave.SectionAccess
	err := q.QueryRow(ctx, query, string(section)).Scan(
		&access.Section, &access.AllowedRoles, &access.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.SectionAccess{}, leave.ErrSectionForbidden
		}
		return leave.SectionAccess{}, err
	}

	return access, nil
}

// List implements leave.AccessRepository.
func (r *leaveAccessRepositoryImpl) List(ctx context.Context) ([]leave.SectionAccess, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT section, allowed_roles, updated_at
		FROM leave_section_access
		ORDER BY section
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accesses := make([]leave.SectionAccess, 0)
	for rows.Next() {
		var access leave.SectionAccess
		if err := rows.Scan(&access.Section, &access.AllowedRoles, &access.UpdatedAt); err != nil {
			return nil, err
		}
		accesses = append(accesses, access)
	}

	return accesses, rows.Err()
}

// Set implements leave.AccessRepository.
func (r *leaveAccessRepositoryImpl) Set(ctx context.Context, access leave.SectionAccess) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_section_access (section, allowed_roles, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (section) DO UPDATE
		SET allowed_roles = EXCLUDED.allowed_roles, updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, string(access.Section), access.AllowedRoles)
	return err
}
