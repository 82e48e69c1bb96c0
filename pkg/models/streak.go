package models

// StudyStreak is the singleton consecutive-day streak row. Dates are
// YYYY-MM-DD strings; an empty string means "never".
type StudyStreak struct {
	CurrentStreak           int    `json:"current_streak" db:"current_streak"`
	LongestStreak           int    `json:"longest_streak" db:"longest_streak"`
	LastStreakIncrementDate string `json:"last_streak_increment_date" db:"last_streak_increment_date"`
	LastActivityDate        string `json:"last_activity_date" db:"last_activity_date"`
}

// DailyStudyStats is the singleton per-day counter row. The counter resets
// whenever LastResetDate differs from the current date.
type DailyStudyStats struct {
	LastResetDate        string `json:"last_reset_date" db:"last_reset_date"`
	NewItemsStudiedToday int    `json:"new_items_studied_today" db:"new_items_studied_today"`
}
