package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Translation is a directed link from a source lexeme to a target lexeme.
// Distractors caches precomputed wrong-answer candidates for quizzes.
type Translation struct {
	ID             int64      `json:"id" db:"id"`
	SourceLexemeID int64      `json:"source_lexeme_id" db:"source_lexeme_id"`
	TargetLexemeID int64      `json:"target_lexeme_id" db:"target_lexeme_id"`
	Distractors    StringList `json:"distractors" db:"distractors"`
}

// StringList is a []string stored as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %v", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL scans to an empty list; anything that
// is not a JSON string array is rejected rather than silently dropped.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %v", err)
	}
	*l = out
	return nil
}
