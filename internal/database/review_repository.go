package database

import (
	"context"
	"fmt"

	"github.com/example/wordvault/pkg/models"
)

// ReviewRepository runs the read-only queries behind the quiz flow: due
// items, summary counts, and the distractor pool.
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository creates a new repository instance.
func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

// DueItems returns records with due <= now, oldest-due first. Ties break on
// learning id so results are reproducible.
func (r *ReviewRepository) DueItems(ctx context.Context, nowUnix int64, limit int) ([]models.DueItem, error) {
	var items []models.DueItem
	err := r.store.db.SelectContext(ctx, &items, `
		SELECT
			l.id AS learning_id,
			t.id AS translation_id,
			src.id AS source_lexeme_id,
			tgt.id AS target_lexeme_id,
			src.text AS source_text,
			tgt.text AS target_text,
			tgt.language AS target_lang,
			t.distractors AS cached_distractors,
			l.last_incorrect_choice,
			l.due
		FROM learning_records l
		JOIN translations t ON l.translation_id = t.id
		JOIN lexemes src ON t.source_lexeme_id = src.id
		JOIN lexemes tgt ON t.target_lexeme_id = tgt.id
		WHERE l.due <= $1
		ORDER BY l.due ASC, l.id ASC
		LIMIT $2`, nowUnix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due items: %v", err)
	}
	return items, nil
}

// SummaryCounts returns queue counts. Review and Due are computed from the
// same predicate on purpose; see models.SummaryCounts.
func (r *ReviewRepository) SummaryCounts(ctx context.Context, nowUnix int64) (models.SummaryCounts, error) {
	var counts models.SummaryCounts

	err := r.store.db.GetContext(ctx, &counts.New,
		"SELECT COUNT(*) FROM learning_records WHERE state = $1", models.StateNew)
	if err != nil {
		return models.SummaryCounts{}, fmt.Errorf("failed to count new records: %v", err)
	}

	var due int
	err = r.store.db.GetContext(ctx, &due,
		"SELECT COUNT(*) FROM learning_records WHERE state != $1 AND due <= $2",
		models.StateNew, nowUnix)
	if err != nil {
		return models.SummaryCounts{}, fmt.Errorf("failed to count due records: %v", err)
	}
	counts.Review = due
	counts.Due = due
	return counts, nil
}

// Distractors returns up to count distinct target-side texts in language,
// excluding the correct lexeme, as a random subset of the pool. The pool is
// limited to lexemes the user is actually learning so options stay
// plausible.
func (r *ReviewRepository) Distractors(ctx context.Context, correctLexemeID int64, language string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	return distractorPool(ctx, r.store.db, correctLexemeID, language, count)
}

func distractorPool(ctx context.Context, q queryer, correctLexemeID int64, language string, count int) ([]string, error) {
	var texts []string
	// RANDOM() over the distinct pool; the subquery keeps postgres happy
	// about DISTINCT + ORDER BY.
	err := q.SelectContext(ctx, &texts, `
		SELECT text FROM (
			SELECT DISTINCT tgt.text AS text
			FROM learning_records l
			JOIN translations t ON l.translation_id = t.id
			JOIN lexemes tgt ON t.target_lexeme_id = tgt.id
			WHERE tgt.language = $1 AND tgt.id != $2
		) pool
		ORDER BY RANDOM()
		LIMIT $3`, language, correctLexemeID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to get distractors: %v", err)
	}
	return texts, nil
}
