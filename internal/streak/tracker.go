package streak

import (
	"context"
	"log"
	"time"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/pkg/models"
)

const dateLayout = "2006-01-02"

// Tracker maintains the daily study streak and the per-day new-item
// counter. These are UX metrics: every method absorbs storage errors,
// logs them, and returns a zeroed value instead of failing the caller,
// unlike the grading engine where errors must propagate.
type Tracker struct {
	repo *database.StreakRepository

	// now is replaceable in tests to pin the calendar day.
	now func() time.Time
}

// New creates a tracker backed by the given store.
func New(store *database.Store) *Tracker {
	return &Tracker{
		repo: database.NewStreakRepository(store),
		now:  time.Now,
	}
}

// today and yesterday as calendar dates in the tracker clock's location.
func (t *Tracker) today() string {
	return t.now().Format(dateLayout)
}

func (t *Tracker) yesterday() string {
	return t.now().AddDate(0, 0, -1).Format(dateLayout)
}

// CheckAndResetStreakIfNeeded breaks the streak when a full day was missed.
// Two independent checks, both idempotent: a second call on the same day
// changes nothing.
//
//   - lastActivityDate < yesterday: no study at all for a whole day.
//   - currentStreak > 0 and lastStreakIncrementDate < yesterday: the goal
//     was not met yesterday.
func (t *Tracker) CheckAndResetStreakIfNeeded(ctx context.Context) models.StudyStreak {
	streak, err := t.repo.GetOrInitStreak(ctx)
	if err != nil {
		log.Printf("streak: failed to load streak: %v", err)
		return models.StudyStreak{}
	}

	yesterday := t.yesterday()
	reset := false
	if streak.LastActivityDate < yesterday {
		reset = true
	}
	if streak.CurrentStreak > 0 && streak.LastStreakIncrementDate < yesterday {
		reset = true
	}
	if reset && streak.CurrentStreak != 0 {
		streak.CurrentStreak = 0
		if err := t.repo.UpdateStreak(ctx, streak); err != nil {
			log.Printf("streak: failed to reset streak: %v", err)
			return models.StudyStreak{}
		}
	}
	return *streak
}

// ProcessDailyGoalCompletion credits today's goal. Idempotent per day: if
// the goal was already credited today this is a no-op. A goal met the day
// after the previous credit extends the streak; any larger gap restarts it
// at 1.
func (t *Tracker) ProcessDailyGoalCompletion(ctx context.Context) models.StudyStreak {
	streak, err := t.repo.GetOrInitStreak(ctx)
	if err != nil {
		log.Printf("streak: failed to load streak: %v", err)
		return models.StudyStreak{}
	}

	today := t.today()
	if streak.LastStreakIncrementDate == today {
		return *streak
	}

	if streak.LastStreakIncrementDate == t.yesterday() {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastStreakIncrementDate = today
	streak.LastActivityDate = today

	if err := t.repo.UpdateStreak(ctx, streak); err != nil {
		log.Printf("streak: failed to update streak: %v", err)
		return models.StudyStreak{}
	}
	return *streak
}

// RecordStudyActivityToday marks today as a study day regardless of goal
// completion. Idempotent.
func (t *Tracker) RecordStudyActivityToday(ctx context.Context) {
	streak, err := t.repo.GetOrInitStreak(ctx)
	if err != nil {
		log.Printf("streak: failed to load streak: %v", err)
		return
	}
	today := t.today()
	if streak.LastActivityDate == today {
		return
	}
	streak.LastActivityDate = today
	if err := t.repo.UpdateStreak(ctx, streak); err != nil {
		log.Printf("streak: failed to record activity: %v", err)
	}
}

// GetStreak returns the current streak row.
func (t *Tracker) GetStreak(ctx context.Context) models.StudyStreak {
	streak, err := t.repo.GetOrInitStreak(ctx)
	if err != nil {
		log.Printf("streak: failed to load streak: %v", err)
		return models.StudyStreak{}
	}
	return *streak
}

// GetOrInitDailyStudyStats returns today's counter, resetting it first when
// the stored date is stale.
func (t *Tracker) GetOrInitDailyStudyStats(ctx context.Context) models.DailyStudyStats {
	stats, err := t.repo.GetOrInitDailyStats(ctx, t.today())
	if err != nil {
		log.Printf("streak: failed to load daily stats: %v", err)
		return models.DailyStudyStats{}
	}
	return *stats
}

// IncrementNewItemsStudiedToday bumps today's new-item counter and returns
// the fresh row. The increment is date-guarded in SQL; if the day rolled
// over between reset and increment the update is a no-op and the counter is
// re-fetched for the new day.
func (t *Tracker) IncrementNewItemsStudiedToday(ctx context.Context) models.DailyStudyStats {
	// Ensure the row exists and belongs to today.
	if stats := t.GetOrInitDailyStudyStats(ctx); stats.LastResetDate == "" {
		return stats
	}
	updated, err := t.repo.IncrementNewItemsToday(ctx, t.today())
	if err != nil {
		log.Printf("streak: failed to increment daily counter: %v", err)
		return models.DailyStudyStats{}
	}
	if !updated {
		// Raced with day rollover; re-fetch resets for the new day.
		return t.GetOrInitDailyStudyStats(ctx)
	}
	return t.GetOrInitDailyStudyStats(ctx)
}
