package srs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/pkg/models"
)

// Grade re-exports the go-fsrs rating scale so callers don't import the
// algorithm package directly. Numbering: Again=1, Hard=2, Good=3, Easy=4.
const (
	Again = fsrs.Again
	Hard  = fsrs.Hard
	Good  = fsrs.Good
	Easy  = fsrs.Easy
)

// Engine grades reviews: it loads a learning record, runs the FSRS
// stability/difficulty transition, and persists the new state atomically.
// Stability and difficulty only ever move through the transition function;
// nothing else writes them.
type Engine struct {
	store    *database.Store
	learning *database.LearningRepository
	params   fsrs.Parameters
	locks    *keyedMutex
}

// NewEngine creates an engine with default FSRS parameters.
func NewEngine(store *database.Store) *Engine {
	return &Engine{
		store:    store,
		learning: database.NewLearningRepository(store),
		params:   fsrs.DefaultParam(),
		locks:    newKeyedMutex(),
	}
}

// Result reports the outcome of a graded review.
type Result struct {
	// Record is the learning record after the transition.
	Record models.LearningRecord
	// WasNew is true when this review moved the record out of the New
	// state, i.e. the user studied a new item.
	WasNew bool
}

// GradeReview applies grade to the learning record at reviewTime and writes
// the new card state, last_review, and (when non-empty) the incorrect
// choice the user picked, all in one transaction. A zero reviewTime means
// now.
//
// Concurrent calls for the same learning id are serialized internally; on
// postgres the row is additionally locked FOR UPDATE for the duration of
// the transaction.
func (e *Engine) GradeReview(ctx context.Context, learningID int64, grade fsrs.Rating, reviewTime time.Time, incorrectChoice string) (*Result, error) {
	if grade < Again || grade > Easy {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}
	if reviewTime.IsZero() {
		reviewTime = time.Now()
	}
	reviewTime = reviewTime.UTC()

	unlock := e.locks.Lock(learningID)
	defer unlock()

	tx, err := e.store.DB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	rec, err := e.learning.GetByIDForUpdate(ctx, tx, learningID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, learningID)
		}
		return nil, fmt.Errorf("failed to load learning record: %v", err)
	}

	card, err := rec.ToCard()
	if err != nil {
		return nil, err
	}
	wasNew := card.State == fsrs.New

	next := e.params.Repeat(card, reviewTime)[grade]
	rec.ApplyCard(next.Card)

	lastReview := reviewTime.Unix()
	rec.LastReview = &lastReview
	if incorrectChoice != "" {
		choice := incorrectChoice
		rec.LastIncorrectChoice = &choice
	}

	if err := e.learning.UpdateTx(ctx, tx, rec, reviewTime.Unix()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, learningID)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %v", err)
	}

	return &Result{Record: *rec, WasNew: wasNew}, nil
}

// Preview returns the card state that each grade would produce, without
// persisting anything. Useful for showing interval hints on answer buttons.
func (e *Engine) Preview(ctx context.Context, learningID int64, reviewTime time.Time) (map[fsrs.Rating]fsrs.Card, error) {
	if reviewTime.IsZero() {
		reviewTime = time.Now()
	}
	rec, err := e.learning.GetByID(ctx, learningID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, learningID)
		}
		return nil, fmt.Errorf("failed to load learning record: %v", err)
	}
	card, err := rec.ToCard()
	if err != nil {
		return nil, err
	}
	log := e.params.Repeat(card, reviewTime.UTC())
	out := make(map[fsrs.Rating]fsrs.Card, 4)
	for _, g := range []fsrs.Rating{Again, Hard, Good, Easy} {
		out[g] = log[g].Card
	}
	return out, nil
}
