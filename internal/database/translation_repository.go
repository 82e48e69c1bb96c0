package database

import (
	"context"
	"fmt"

	"github.com/example/wordvault/pkg/models"
)

// TranslationRepository handles database operations for translations.
type TranslationRepository struct {
	store *Store
}

// NewTranslationRepository creates a new repository instance.
func NewTranslationRepository(store *Store) *TranslationRepository {
	return &TranslationRepository{store: store}
}

// Upsert inserts the (source, target) pair and returns its id, resolving to
// the existing row on conflict.
func (r *TranslationRepository) Upsert(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return upsertTranslation(ctx, r.store, r.store.db, sourceID, targetID)
}

// GetByID returns a translation by id.
func (r *TranslationRepository) GetByID(ctx context.Context, id int64) (*models.Translation, error) {
	var tr models.Translation
	err := r.store.db.GetContext(ctx, &tr, `
		SELECT id, source_lexeme_id, target_lexeme_id, distractors
		FROM translations WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get translation by ID: %v", err)
	}
	return &tr, nil
}

// UpdateDistractorCache replaces the cached wrong-answer candidates.
func (r *TranslationRepository) UpdateDistractorCache(ctx context.Context, id int64, distractors []string) error {
	return updateDistractorCache(ctx, r.store.db, id, distractors)
}

func upsertTranslation(ctx context.Context, store *Store, q queryer, sourceID, targetID int64) (int64, error) {
	var id int64

	if store.driver == "postgres" {
		query := `
			INSERT INTO translations (source_lexeme_id, target_lexeme_id)
			VALUES ($1, $2)
			ON CONFLICT (source_lexeme_id, target_lexeme_id)
			DO UPDATE SET source_lexeme_id = EXCLUDED.source_lexeme_id
			RETURNING id
		`
		if err := q.QueryRowxContext(ctx, query, sourceID, targetID).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to upsert translation: %v", err)
		}
		return id, nil
	}

	if _, err := q.ExecContext(ctx, `
		INSERT OR IGNORE INTO translations (source_lexeme_id, target_lexeme_id)
		VALUES ($1, $2)`, sourceID, targetID); err != nil {
		return 0, fmt.Errorf("failed to upsert translation: %v", err)
	}
	if err := q.QueryRowxContext(ctx, `
		SELECT id FROM translations
		WHERE source_lexeme_id = $1 AND target_lexeme_id = $2`, sourceID, targetID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve translation id: %v", err)
	}
	return id, nil
}

func updateDistractorCache(ctx context.Context, q queryer, id int64, distractors []string) error {
	_, err := q.ExecContext(ctx,
		"UPDATE translations SET distractors = $1 WHERE id = $2",
		models.StringList(distractors), id)
	if err != nil {
		return fmt.Errorf("failed to update distractor cache: %v", err)
	}
	return nil
}
