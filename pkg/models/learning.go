package models

import (
	"fmt"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
)

// LearningRecord is the per-translation spaced-repetition state. Exactly one
// record exists per translation; only the grading engine mutates it.
//
// Timestamps are unix seconds (UTC). LastReview is NULL until the first
// review; LastIncorrectChoice holds the most recent wrong option the user
// picked, for adaptive distractor avoidance.
type LearningRecord struct {
	ID                  int64   `json:"id" db:"id"`
	TranslationID       int64   `json:"translation_id" db:"translation_id"`
	Due                 int64   `json:"due" db:"due"`
	Stability           float64 `json:"stability" db:"stability"`
	Difficulty          float64 `json:"difficulty" db:"difficulty"`
	ElapsedDays         int64   `json:"elapsed_days" db:"elapsed_days"`
	ScheduledDays       int64   `json:"scheduled_days" db:"scheduled_days"`
	Reps                int64   `json:"reps" db:"reps"`
	Lapses              int64   `json:"lapses" db:"lapses"`
	State               int     `json:"state" db:"state"`
	LastReview          *int64  `json:"last_review" db:"last_review"`
	LastIncorrectChoice *string `json:"last_incorrect_choice" db:"last_incorrect_choice"`
	CreatedAt           int64   `json:"created_at" db:"created_at"`
	UpdatedAt           int64   `json:"updated_at" db:"updated_at"`
}

// Card states, mirroring go-fsrs numbering.
const (
	StateNew        = int(fsrs.New)
	StateLearning   = int(fsrs.Learning)
	StateReview     = int(fsrs.Review)
	StateRelearning = int(fsrs.Relearning)
)

// ToCard converts the stored row into an fsrs.Card, validating the state
// value so a corrupt row fails loudly instead of feeding garbage into the
// scheduler.
func (r *LearningRecord) ToCard() (fsrs.Card, error) {
	if r.State < StateNew || r.State > StateRelearning {
		return fsrs.Card{}, fmt.Errorf("learning record %d has invalid state %d", r.ID, r.State)
	}
	if r.ElapsedDays < 0 || r.ScheduledDays < 0 || r.Reps < 0 || r.Lapses < 0 {
		return fsrs.Card{}, fmt.Errorf("learning record %d has negative counters", r.ID)
	}
	card := fsrs.Card{
		Due:           time.Unix(r.Due, 0).UTC(),
		Stability:     r.Stability,
		Difficulty:    r.Difficulty,
		ElapsedDays:   uint64(r.ElapsedDays),
		ScheduledDays: uint64(r.ScheduledDays),
		Reps:          uint64(r.Reps),
		Lapses:        uint64(r.Lapses),
		State:         fsrs.State(r.State),
	}
	if r.LastReview != nil {
		card.LastReview = time.Unix(*r.LastReview, 0).UTC()
	}
	return card, nil
}

// ApplyCard writes the scheduler's output back onto the row.
func (r *LearningRecord) ApplyCard(card fsrs.Card) {
	r.Due = card.Due.UTC().Unix()
	r.Stability = card.Stability
	r.Difficulty = card.Difficulty
	r.ElapsedDays = int64(card.ElapsedDays)
	r.ScheduledDays = int64(card.ScheduledDays)
	r.Reps = int64(card.Reps)
	r.Lapses = int64(card.Lapses)
	r.State = int(card.State)
	if !card.LastReview.IsZero() {
		ts := card.LastReview.UTC().Unix()
		r.LastReview = &ts
	}
}

// DueTime returns Due as a time.Time.
func (r *LearningRecord) DueTime() time.Time {
	return time.Unix(r.Due, 0).UTC()
}
