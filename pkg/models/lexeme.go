package models

// Lexeme represents a word or phrase in a specific language.
// The (text, language) pair is unique; re-inserting an existing pair
// resolves to the existing row.
type Lexeme struct {
	ID       int64  `json:"id" db:"id"`
	Text     string `json:"text" db:"text"`
	Language string `json:"language" db:"language"`
}
