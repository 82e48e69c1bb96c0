package review

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/internal/srs"
	"github.com/example/wordvault/internal/streak"
	"github.com/example/wordvault/pkg/models"
)

// DefaultDueLimit is used when the caller passes limit 0.
const DefaultDueLimit = 10

// DefaultDailyGoal is the new-item count that credits a streak day.
const DefaultDailyGoal = 10

// GoalFromEnv reads DAILY_GOAL, falling back to DefaultDailyGoal when unset
// or malformed.
func GoalFromEnv() int {
	if v := os.Getenv("DAILY_GOAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultDailyGoal
}

// Service is the surface the quiz UI talks to: list due cards, build
// multiple-choice options, submit grades. Grading errors propagate;
// streak/counter updates are best-effort and never fail a review.
type Service struct {
	repo      *database.ReviewRepository
	engine    *srs.Engine
	tracker   *streak.Tracker
	dailyGoal int
}

// NewService wires the review surface. goal <= 0 falls back to
// DefaultDailyGoal.
func NewService(store *database.Store, engine *srs.Engine, tracker *streak.Tracker, goal int) *Service {
	if goal <= 0 {
		goal = DefaultDailyGoal
	}
	return &Service{
		repo:      database.NewReviewRepository(store),
		engine:    engine,
		tracker:   tracker,
		dailyGoal: goal,
	}
}

// GetDueItems lists records with due <= now, oldest first. limit 0 means
// DefaultDueLimit; a negative limit is rejected before touching the store.
func (s *Service) GetDueItems(ctx context.Context, limit int) ([]models.DueItem, error) {
	if limit < 0 {
		return nil, fmt.Errorf("due item limit must be positive, got %d", limit)
	}
	if limit == 0 {
		limit = DefaultDueLimit
	}
	return s.repo.DueItems(ctx, time.Now().Unix(), limit)
}

// GetSummaryCounts returns the queue counts for the toolbar badge.
func (s *Service) GetSummaryCounts(ctx context.Context) (models.SummaryCounts, error) {
	return s.repo.SummaryCounts(ctx, time.Now().Unix())
}

// GetDistractors returns up to count wrong answers in targetLanguage,
// never including the correct lexeme's text. count <= 0 short-circuits to
// an empty result; a pool smaller than count is returned whole.
func (s *Service) GetDistractors(ctx context.Context, correctLexemeID int64, targetLanguage string, count int) ([]string, error) {
	return s.repo.Distractors(ctx, correctLexemeID, targetLanguage, count)
}

// SubmitReview grades a card at the current time and feeds the streak
// bookkeeping: a first-ever review of an item counts toward the daily
// new-item goal, and hitting the goal credits today's streak day.
func (s *Service) SubmitReview(ctx context.Context, learningID int64, grade fsrs.Rating, incorrectChoice string) (*srs.Result, error) {
	result, err := s.engine.GradeReview(ctx, learningID, grade, time.Now(), incorrectChoice)
	if err != nil {
		return nil, err
	}

	s.tracker.RecordStudyActivityToday(ctx)
	if result.WasNew {
		stats := s.tracker.IncrementNewItemsStudiedToday(ctx)
		if stats.NewItemsStudiedToday >= s.dailyGoal {
			s.tracker.ProcessDailyGoalCompletion(ctx)
		}
	}
	return result, nil
}
