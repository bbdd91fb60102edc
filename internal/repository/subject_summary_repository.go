package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

// SubjectSummaryRepository holds the derived per-subject totals.
type SubjectSummaryRepository struct {
	db *sqlx.DB
}

func NewSubjectSummaryRepository(db *sqlx.DB) *SubjectSummaryRepository {
	return &SubjectSummaryRepository{db: db}
}

// ListByUser returns summaries ordered by display name.
func (r *SubjectSummaryRepository) ListByUser(ctx context.Context, userID string) ([]models.SubjectSummary, error) {
	const query = `SELECT user_id, subject_key, name, total_classes, attended_classes, updated_at FROM subject_summaries WHERE user_id = $1 ORDER BY name ASC, subject_key ASC`
	summaries := make([]models.SubjectSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, fmt.Errorf("list subject summaries: %w", err)
	}
	return summaries, nil
}

// Merge upserts name and totals only. Each call is its own statement.
func (r *SubjectSummaryRepository) Merge(ctx context.Context, summary models.SubjectSummary) error {
	const query = `INSERT INTO subject_summaries (user_id, subject_key, name, total_classes, attended_classes, updated_at) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, subject_key) DO UPDATE SET name = EXCLUDED.name, total_classes = EXCLUDED.total_classes, attended_classes = EXCLUDED.attended_classes, updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		summary.UserID,
		summary.Key,
		summary.Name,
		summary.TotalClasses,
		summary.AttendedClasses,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("merge subject summary %s: %w", summary.Key, err)
	}
	return nil
}
