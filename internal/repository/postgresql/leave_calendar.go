package postgresql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
	"github.com/workforcehq/hrms-backend-go/internal/pkg/database"
)

type leaveCalendarRepositoryImpl struct {
	db *database.DB
}

func NewLeaveCalendarRepository(db *database.DB) leave.CalendarRepository {
	return &leaveCalendarRepositoryImpl{db: db}
}

// Upsert implements leave.CalendarRepository. One calendar row per year.
func (r *leaveCalendarRepositoryImpl) Upsert(ctx context.Context, calendar leave.Calendar) (leave.Calendar, error) {
	q := GetQuerier(ctx, r.db)

	holidays := make([]string, 0, len(calendar.Holidays))
	for _, h := range calendar.Holidays {
		holidays = append(holidays, h.Format("2006-01-02"))
	}
	holidaysJSON, err := json.Marshal(holidays)
	if err != nil {
		return leave.Calendar{}, err
	}
	blockedJSON, err := json.Marshal(calendar.BlockedPeriods)
	if err != nil {
		return leave.Calendar{}, err
	}

	query := `
		INSERT INTO leave_calendars (id, year, holidays, blocked_periods, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		ON CONFLICT (year) DO UPDATE
		SET holidays = EXCLUDED.holidays,
			blocked_periods = EXCLUDED.blocked_periods,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, calendar.Year, holidaysJSON, blockedJSON).
		Scan(&calendar.ID, &calendar.CreatedAt, &calendar.UpdatedAt)
	if err != nil {
		return leave.Calendar{}, err
	}

	return calendar, nil
}

// GetByYear implements leave.CalendarRepository.
func (r *leaveCalendarRepositoryImpl) GetByYear(ctx context.Context, year int) (leave.Calendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, year, holidays, blocked_periods, created_at, updated_at
		FROM leave_calendars
		WHERE year = $1
	`

	var calendar leave.Calendar
	var holidaysJSON, blockedJSON []byte

	err := q.QueryRow(ctx, query, year).Scan(
		&calendar.ID, &calendar.Year, &holidaysJSON, &blockedJSON,
		&calendar.CreatedAt, &calendar.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Calendar{}, leave.ErrCalendarNotFound
		}
		return leave.Calendar{}, err
	}

	if holidaysJSON != nil {
		var holidays []string
		if err := json.Unmarshal(holidaysJSON, &holidays); err != nil {
			return leave.Calendar{}, err
		}
		for _, h := range holidays {
			d, err := time.Parse("2006-01-02", h)
			if err != nil {
				return leave.Calendar{}, err
			}
			calendar.Holidays = append(calendar.Holidays, d)
		}
	}
	if blockedJSON != nil {
		if err := json.Unmarshal(blockedJSON, &calendar.BlockedPeriods); err != nil {
			return leave.Calendar{}, err
		}
	}

	return calendar, nil
}
