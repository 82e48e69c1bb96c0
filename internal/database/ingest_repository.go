package database

import (
	"context"
	"fmt"
)

// CapturedRows are the ids touched by one vocabulary capture.
type CapturedRows struct {
	SourceLexemeID int64
	TargetLexemeID int64
	TranslationID  int64
	LearningID     int64
}

// IngestRepository runs the write side of the ingestion pipeline.
type IngestRepository struct {
	store *Store
}

// NewIngestRepository creates a new repository instance.
func NewIngestRepository(store *Store) *IngestRepository {
	return &IngestRepository{store: store}
}

// Capture upserts both lexemes, the translation, and the learning record
// (state=New, due=now), and appends the encounter row, all in one
// transaction. Re-capturing an existing pair resolves to the existing rows.
func (r *IngestRepository) Capture(ctx context.Context, sourceText, sourceLang, targetText, targetLang, url, highlighted string, nowUnix int64) (*CapturedRows, error) {
	tx, err := r.store.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var rows CapturedRows
	rows.SourceLexemeID, err = upsertLexeme(ctx, r.store, tx, sourceText, sourceLang)
	if err != nil {
		return nil, err
	}
	rows.TargetLexemeID, err = upsertLexeme(ctx, r.store, tx, targetText, targetLang)
	if err != nil {
		return nil, err
	}
	rows.TranslationID, err = upsertTranslation(ctx, r.store, tx, rows.SourceLexemeID, rows.TargetLexemeID)
	if err != nil {
		return nil, err
	}
	rows.LearningID, err = createLearningIfAbsent(ctx, r.store, tx, rows.TranslationID, nowUnix)
	if err != nil {
		return nil, err
	}
	if err := recordEncounter(ctx, tx, rows.LearningID, url, highlighted, nowUnix); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit capture: %v", err)
	}
	return &rows, nil
}

// RefreshDistractorCache recomputes and stores the translation's cached
// wrong-answer candidates from the current learning pool.
func (r *IngestRepository) RefreshDistractorCache(ctx context.Context, translationID, targetLexemeID int64, targetLang string, size int) error {
	texts, err := distractorPool(ctx, r.store.db, targetLexemeID, targetLang, size)
	if err != nil {
		return err
	}
	return updateDistractorCache(ctx, r.store.db, translationID, texts)
}
