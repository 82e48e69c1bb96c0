package models

// Encounter links a learning record to the page where the word was met.
// Rows are append-only and never mutated.
type Encounter struct {
	ID              int64  `json:"id" db:"id"`
	LearningID      int64  `json:"learning_id" db:"learning_id"`
	URL             string `json:"url" db:"url"`
	HighlightedText string `json:"highlighted_text" db:"highlighted_text"`
	CreatedAt       int64  `json:"created_at" db:"created_at"`
}
