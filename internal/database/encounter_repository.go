package database

import (
	"context"
	"fmt"

	"github.com/example/wordvault/pkg/models"
)

// EncounterRepository handles the append-only encounter log.
type EncounterRepository struct {
	store *Store
}

// NewEncounterRepository creates a new repository instance.
func NewEncounterRepository(store *Store) *EncounterRepository {
	return &EncounterRepository{store: store}
}

// Record appends an encounter row. Rows are write-once; there is no update
// or delete path.
func (r *EncounterRepository) Record(ctx context.Context, learningID int64, url, highlighted string, nowUnix int64) error {
	return recordEncounter(ctx, r.store.db, learningID, url, highlighted, nowUnix)
}

// ListByLearningID returns all encounters for a learning record, oldest
// first.
func (r *EncounterRepository) ListByLearningID(ctx context.Context, learningID int64) ([]models.Encounter, error) {
	var encounters []models.Encounter
	err := r.store.db.SelectContext(ctx, &encounters, `
		SELECT id, learning_id, url, highlighted_text, created_at
		FROM encounters
		WHERE learning_id = $1
		ORDER BY id ASC`, learningID)
	if err != nil {
		return nil, fmt.Errorf("failed to list encounters: %v", err)
	}
	return encounters, nil
}

func recordEncounter(ctx context.Context, q queryer, learningID int64, url, highlighted string, nowUnix int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO encounters (learning_id, url, highlighted_text, created_at)
		VALUES ($1, $2, $3, $4)`, learningID, url, highlighted, nowUnix)
	if err != nil {
		return fmt.Errorf("failed to record encounter: %v", err)
	}
	return nil
}
