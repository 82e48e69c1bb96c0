package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wordvault/internal/streak"
)

// Scheduler runs the day-rollover housekeeping so streaks break and daily
// counters reset even when the user doesn't open the extension right at
// midnight.
type Scheduler struct {
	scheduler *gocron.Scheduler
	tracker   *streak.Tracker
}

// New creates a new scheduler instance.
func New(tracker *streak.Tracker) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		tracker:   tracker,
	}
}

// Start runs the rollover once immediately, then daily shortly after
// midnight, in a non-blocking manner.
func (s *Scheduler) Start() {
	s.runRollover()
	if _, err := s.scheduler.Every(1).Day().At("00:05").Do(s.runRollover); err != nil {
		log.Printf("scheduler: failed to schedule rollover job: %v", err)
	}
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runRollover() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st := s.tracker.CheckAndResetStreakIfNeeded(ctx)
	stats := s.tracker.GetOrInitDailyStudyStats(ctx)
	log.Printf("rollover: streak=%d (longest %d), studied today=%d",
		st.CurrentStreak, st.LongestStreak, stats.NewItemsStudiedToday)
}
