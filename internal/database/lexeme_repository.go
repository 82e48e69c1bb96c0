package database

import (
	"context"
	"fmt"

	"github.com/example/wordvault/pkg/models"
)

// LexemeRepository handles database operations for lexemes.
type LexemeRepository struct {
	store *Store
}

// NewLexemeRepository creates a new repository instance.
func NewLexemeRepository(store *Store) *LexemeRepository {
	return &LexemeRepository{store: store}
}

// Upsert inserts the (text, language) pair and returns its id. If the pair
// already exists the existing id is returned; no duplicate is created.
func (r *LexemeRepository) Upsert(ctx context.Context, text, language string) (int64, error) {
	return upsertLexeme(ctx, r.store, r.store.db, text, language)
}

// GetByID returns a lexeme by id.
func (r *LexemeRepository) GetByID(ctx context.Context, id int64) (*models.Lexeme, error) {
	var lex models.Lexeme
	err := r.store.db.GetContext(ctx, &lex, "SELECT id, text, language FROM lexemes WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lexeme by ID: %v", err)
	}
	return &lex, nil
}

func upsertLexeme(ctx context.Context, store *Store, q queryer, text, language string) (int64, error) {
	var id int64

	if store.driver == "postgres" {
		// ON CONFLICT DO UPDATE so RETURNING fires for existing rows too.
		query := `
			INSERT INTO lexemes (text, language)
			VALUES ($1, $2)
			ON CONFLICT (text, language) DO UPDATE SET text = EXCLUDED.text
			RETURNING id
		`
		if err := q.QueryRowxContext(ctx, query, text, language).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to upsert lexeme: %v", err)
		}
		return id, nil
	}

	// SQLite: INSERT OR IGNORE, then read the id back.
	if _, err := q.ExecContext(ctx,
		"INSERT OR IGNORE INTO lexemes (text, language) VALUES ($1, $2)", text, language); err != nil {
		return 0, fmt.Errorf("failed to upsert lexeme: %v", err)
	}
	if err := q.QueryRowxContext(ctx,
		"SELECT id FROM lexemes WHERE text = $1 AND language = $2", text, language).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve lexeme id: %v", err)
	}
	return id, nil
}
