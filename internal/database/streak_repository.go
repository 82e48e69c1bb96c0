package database

import (
	"context"
	"fmt"

	"github.com/example/wordvault/pkg/models"
)

// StreakRepository handles the singleton streak and daily-stats rows.
type StreakRepository struct {
	store *Store
}

// NewStreakRepository creates a new repository instance.
func NewStreakRepository(store *Store) *StreakRepository {
	return &StreakRepository{store: store}
}

// GetOrInitStreak returns the streak row, creating the zeroed singleton on
// first use.
func (r *StreakRepository) GetOrInitStreak(ctx context.Context) (*models.StudyStreak, error) {
	if err := r.insertSingleton(ctx, "study_streak"); err != nil {
		return nil, err
	}
	var streak models.StudyStreak
	err := r.store.db.GetContext(ctx, &streak, `
		SELECT current_streak, longest_streak, last_streak_increment_date, last_activity_date
		FROM study_streak WHERE id = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to get study streak: %v", err)
	}
	return &streak, nil
}

// UpdateStreak writes the streak row back.
func (r *StreakRepository) UpdateStreak(ctx context.Context, streak *models.StudyStreak) error {
	_, err := r.store.db.ExecContext(ctx, `
		UPDATE study_streak SET
			current_streak = $1,
			longest_streak = $2,
			last_streak_increment_date = $3,
			last_activity_date = $4
		WHERE id = 1`,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastStreakIncrementDate,
		streak.LastActivityDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update study streak: %v", err)
	}
	return nil
}

// GetOrInitDailyStats returns the daily counter row, resetting it to zero
// whenever the stored date differs from today.
func (r *StreakRepository) GetOrInitDailyStats(ctx context.Context, today string) (*models.DailyStudyStats, error) {
	if err := r.insertSingleton(ctx, "daily_study_stats"); err != nil {
		return nil, err
	}
	// Day rolled over: zero the counter.
	_, err := r.store.db.ExecContext(ctx, `
		UPDATE daily_study_stats SET last_reset_date = $1, new_items_studied_today = 0
		WHERE id = 1 AND last_reset_date != $1`, today)
	if err != nil {
		return nil, fmt.Errorf("failed to reset daily stats: %v", err)
	}
	var stats models.DailyStudyStats
	err = r.store.db.GetContext(ctx, &stats, `
		SELECT last_reset_date, new_items_studied_today
		FROM daily_study_stats WHERE id = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %v", err)
	}
	return &stats, nil
}

// IncrementNewItemsToday bumps the counter only if the row still belongs to
// today. Returns false without error when the date no longer matches (day
// rolled over between fetch and increment); the caller should re-fetch.
func (r *StreakRepository) IncrementNewItemsToday(ctx context.Context, today string) (bool, error) {
	res, err := r.store.db.ExecContext(ctx, `
		UPDATE daily_study_stats SET new_items_studied_today = new_items_studied_today + 1
		WHERE id = 1 AND last_reset_date = $1`, today)
	if err != nil {
		return false, fmt.Errorf("failed to increment daily counter: %v", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %v", err)
	}
	return rows > 0, nil
}

func (r *StreakRepository) insertSingleton(ctx context.Context, table string) error {
	query := fmt.Sprintf("INSERT INTO %s (id) VALUES (1) ON CONFLICT (id) DO NOTHING", table)
	if r.store.driver == "sqlite" {
		query = fmt.Sprintf("INSERT OR IGNORE INTO %s (id) VALUES (1)", table)
	}
	if _, err := r.store.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to init %s row: %v", table, err)
	}
	return nil
}
