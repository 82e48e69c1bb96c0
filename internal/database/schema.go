package database

import "fmt"

// createTables creates the schema if it doesn't exist. Statements are kept
// per-driver because sqlite and postgres disagree on auto-increment keys.
func (s *Store) createTables() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS lexemes (
				id %s,
				text TEXT NOT NULL,
				language TEXT NOT NULL,
				UNIQUE(text, language)
			)`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS translations (
				id %s,
				source_lexeme_id BIGINT NOT NULL REFERENCES lexemes(id),
				target_lexeme_id BIGINT NOT NULL REFERENCES lexemes(id),
				distractors TEXT NOT NULL DEFAULT '[]',
				UNIQUE(source_lexeme_id, target_lexeme_id)
			)`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS learning_records (
				id %s,
				translation_id BIGINT NOT NULL UNIQUE REFERENCES translations(id),
				due BIGINT NOT NULL,
				stability DOUBLE PRECISION NOT NULL DEFAULT 0,
				difficulty DOUBLE PRECISION NOT NULL DEFAULT 0,
				elapsed_days BIGINT NOT NULL DEFAULT 0,
				scheduled_days BIGINT NOT NULL DEFAULT 0,
				reps BIGINT NOT NULL DEFAULT 0,
				lapses BIGINT NOT NULL DEFAULT 0,
				state INTEGER NOT NULL DEFAULT 0,
				last_review BIGINT,
				last_incorrect_choice TEXT,
				created_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL
			)`, serial),
		`CREATE INDEX IF NOT EXISTS idx_learning_records_due ON learning_records(due)`,
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS encounters (
				id %s,
				learning_id BIGINT NOT NULL REFERENCES learning_records(id),
				url TEXT NOT NULL DEFAULT '',
				highlighted_text TEXT NOT NULL DEFAULT '',
				created_at BIGINT NOT NULL
			)`, serial),
		`
			CREATE TABLE IF NOT EXISTS study_streak (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				current_streak INTEGER NOT NULL DEFAULT 0,
				longest_streak INTEGER NOT NULL DEFAULT 0,
				last_streak_increment_date TEXT NOT NULL DEFAULT '',
				last_activity_date TEXT NOT NULL DEFAULT ''
			)`,
		`
			CREATE TABLE IF NOT EXISTS daily_study_stats (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				last_reset_date TEXT NOT NULL DEFAULT '',
				new_items_studied_today INTEGER NOT NULL DEFAULT 0
			)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %v", err)
		}
	}
	return nil
}
