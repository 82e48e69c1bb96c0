package models

// DueItem is a learning record eligible for review, joined with the
// human-readable text the quiz UI needs to present a card.
type DueItem struct {
	LearningID          int64      `json:"learning_id" db:"learning_id"`
	TranslationID       int64      `json:"translation_id" db:"translation_id"`
	SourceLexemeID      int64      `json:"source_lexeme_id" db:"source_lexeme_id"`
	TargetLexemeID      int64      `json:"target_lexeme_id" db:"target_lexeme_id"`
	SourceText          string     `json:"source_text" db:"source_text"`
	TargetText          string     `json:"target_text" db:"target_text"`
	TargetLang          string     `json:"target_lang" db:"target_lang"`
	CachedDistractors   StringList `json:"cached_distractors" db:"cached_distractors"`
	LastIncorrectChoice *string    `json:"last_incorrect_choice" db:"last_incorrect_choice"`
	Due                 int64      `json:"due" db:"due"`
}

// SummaryCounts summarizes the study queue. Review and Due are the same
// value today (non-New records with due <= now); the UI shows them under
// two labels.
type SummaryCounts struct {
	New    int `json:"new" db:"new"`
	Review int `json:"review" db:"review"`
	Due    int `json:"due" db:"due"`
}
