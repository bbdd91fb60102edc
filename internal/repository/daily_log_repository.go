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

const dailyLogColumns = `user_id, to_char(log_date, 'YYYY-MM-DD') AS log_date, kind, periods, updated_at`

// DailyLogRepository stores one attendance log per user and date.
type DailyLogRepository struct {
	db *sqlx.DB
}

func NewDailyLogRepository(db *sqlx.DB) *DailyLogRepository {
	return &DailyLogRepository{db: db}
}

// Get returns sql.ErrNoRows when nothing was recorded for the date.
func (r *DailyLogRepository) Get(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE user_id = $1 AND log_date = $2::date`
	var log models.DailyLog
	if err := r.db.GetContext(ctx, &log, query, userID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get daily log: %w", err)
	}
	return &log, nil
}

// ListByUser returns every log of the user, oldest first.
func (r *DailyLogRepository) ListByUser(ctx context.Context, userID string) ([]models.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE user_id = $1 ORDER BY log_date ASC`
	logs := make([]models.DailyLog, 0)
	if err := r.db.SelectContext(ctx, &logs, query, userID); err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	return logs, nil
}

// Replace writes the log wholesale. The last write for a date wins.
func (r *DailyLogRepository) Replace(ctx context.Context, log *models.DailyLog) error {
	if log.Periods == nil {
		log.Periods = models.Periods{}
	}
	log.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO daily_logs (user_id, log_date, kind, periods, updated_at) VALUES ($1, $2::date, $3, $4, $5)
ON CONFLICT (user_id, log_date) DO UPDATE SET kind = EXCLUDED.kind, periods = EXCLUDED.periods, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, log.UserID, log.Date, log.Kind, log.Periods, log.UpdatedAt); err != nil {
		return fmt.Errorf("replace daily log: %w", err)
	}
	return nil
}
