package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

// TimetableRepository keeps one weekly schedule row per user.
type TimetableRepository struct {
	db *sqlx.DB
}

func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// Get returns sql.ErrNoRows when the user never saved a timetable.
func (r *TimetableRepository) Get(ctx context.Context, userID string) (*models.Timetable, error) {
	const query = `SELECT user_id, week, updated_at FROM timetables WHERE user_id = $1`
	var tt models.Timetable
	if err := r.db.GetContext(ctx, &tt, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	return &tt, nil
}

// Replace overwrites the whole week; nothing from the previous row survives.
func (r *TimetableRepository) Replace(ctx context.Context, userID string, week models.WeeklySchedule) error {
	const query = `INSERT INTO timetables (user_id, week, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET week = EXCLUDED.week, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, week, time.Now().UTC()); err != nil {
		return fmt.Errorf("replace timetable: %w", err)
	}
	return nil
}
