package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/wordvault/pkg/models"
)

const learningColumns = `
	id, translation_id, due, stability, difficulty, elapsed_days,
	scheduled_days, reps, lapses, state, last_review,
	last_incorrect_choice, created_at, updated_at
`

// LearningRepository handles database operations for learning records.
type LearningRepository struct {
	store *Store
}

// NewLearningRepository creates a new repository instance.
func NewLearningRepository(store *Store) *LearningRepository {
	return &LearningRepository{store: store}
}

// CreateIfAbsent inserts a fresh record (state=New, due=now) for the
// translation unless one already exists, and returns the record id either
// way. The translation_id unique constraint guarantees one row per
// translation.
func (r *LearningRepository) CreateIfAbsent(ctx context.Context, translationID int64, nowUnix int64) (int64, error) {
	return createLearningIfAbsent(ctx, r.store, r.store.db, translationID, nowUnix)
}

// GetByID returns a learning record by id. sql.ErrNoRows passes through so
// callers can translate it into their own not-found error.
func (r *LearningRepository) GetByID(ctx context.Context, id int64) (*models.LearningRecord, error) {
	return getLearningByID(ctx, r.store, r.store.db, id, false)
}

// GetByIDForUpdate loads a record inside tx, taking a row lock on postgres.
func (r *LearningRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*models.LearningRecord, error) {
	return getLearningByID(ctx, r.store, tx, id, true)
}

// UpdateTx writes all scheduler-owned fields back inside tx.
func (r *LearningRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, rec *models.LearningRecord, nowUnix int64) error {
	rec.UpdatedAt = nowUnix
	res, err := tx.ExecContext(ctx, `
		UPDATE learning_records SET
			due = $1,
			stability = $2,
			difficulty = $3,
			elapsed_days = $4,
			scheduled_days = $5,
			reps = $6,
			lapses = $7,
			state = $8,
			last_review = $9,
			last_incorrect_choice = $10,
			updated_at = $11
		WHERE id = $12`,
		rec.Due,
		rec.Stability,
		rec.Difficulty,
		rec.ElapsedDays,
		rec.ScheduledDays,
		rec.Reps,
		rec.Lapses,
		rec.State,
		rec.LastReview,
		rec.LastIncorrectChoice,
		rec.UpdatedAt,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update learning record: %v", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func getLearningByID(ctx context.Context, store *Store, q queryer, id int64, forUpdate bool) (*models.LearningRecord, error) {
	query := "SELECT " + learningColumns + " FROM learning_records WHERE id = $1"
	if forUpdate && store.driver == "postgres" {
		query += " FOR UPDATE"
	}
	var rec models.LearningRecord
	if err := q.GetContext(ctx, &rec, query, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

func createLearningIfAbsent(ctx context.Context, store *Store, q queryer, translationID, nowUnix int64) (int64, error) {
	var id int64

	if store.driver == "postgres" {
		query := `
			INSERT INTO learning_records (translation_id, due, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (translation_id) DO UPDATE SET translation_id = EXCLUDED.translation_id
			RETURNING id
		`
		if err := q.QueryRowxContext(ctx, query, translationID, nowUnix, nowUnix).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to create learning record: %v", err)
		}
		return id, nil
	}

	if _, err := q.ExecContext(ctx, `
		INSERT OR IGNORE INTO learning_records (translation_id, due, created_at, updated_at)
		VALUES ($1, $2, $3, $3)`, translationID, nowUnix, nowUnix); err != nil {
		return 0, fmt.Errorf("failed to create learning record: %v", err)
	}
	if err := q.QueryRowxContext(ctx,
		"SELECT id FROM learning_records WHERE translation_id = $1", translationID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve learning record id: %v", err)
	}
	return id, nil
}
